package whatsapp

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
	"github.com/yourusername/whatsapp-coffee-bot/internal/usecase"
)

// Handler webhook de WhatsApp (formulario de Twilio). Despacho mínimo:
// la máquina conversacional completa vive fuera de este núcleo; aquí
// solo se exponen las operaciones de catálogo y menú.
type Handler struct {
	catalogUC    usecase.CatalogUseCase
	menuUC       usecase.MenuUseCase
	orderUC      usecase.OrderUseCase
	sessionRepo  repository.SessionRepository
	businessName string
	logger       *zap.Logger
}

// NewHandler crear el handler del webhook
func NewHandler(
	catalogUC usecase.CatalogUseCase,
	menuUC usecase.MenuUseCase,
	orderUC usecase.OrderUseCase,
	sessionRepo repository.SessionRepository,
	businessName string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalogUC:    catalogUC,
		menuUC:       menuUC,
		orderUC:      orderUC,
		sessionRepo:  sessionRepo,
		businessName: businessName,
		logger:       logger,
	}
}

// Routes armar el router del servicio
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/webhook", h.handleWebhook)
	r.Get("/health", h.handleHealth)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulario inválido", http.StatusBadRequest)
		return
	}

	from := r.FormValue("From")
	body := strings.TrimSpace(r.FormValue("Body"))

	h.logger.Info("mensaje entrante",
		zap.String("de", from),
		zap.String("texto", body))

	reply := h.dispatch(r.Context(), from, body)
	writeTwiML(w, reply)
}

func (h *Handler) dispatch(ctx context.Context, from, body string) string {
	switch strings.ToLower(body) {
	case "1", "catalogo", "catálogo":
		return h.catalogUC.FormatCatalog(h.catalogUC.Catalog(ctx))

	case "2", "consultar":
		return h.formatActiveOrders(ctx, from)

	case "3", "info":
		return "*" + h.businessName + "*\n\nVenta de café peruano por kilos.\nEscribe *menu* para volver al menú principal."

	case "cancelar":
		if err := h.orderUC.Cancel(ctx, from); err != nil {
			h.logger.Warn("no se pudo cancelar el borrador", zap.Error(err))
		}
		return "❌ Pedido cancelado.\n\n" + h.composeMenu(ctx, from)

	default:
		return h.composeMenu(ctx, from)
	}
}

func (h *Handler) composeMenu(ctx context.Context, from string) string {
	session, err := h.sessionRepo.Get(ctx, from)
	if err != nil {
		h.logger.Warn("no se pudo obtener la sesión", zap.Error(err))
	}

	activeOrders := h.orderUC.ActiveOrders(ctx, from)
	hasHistory := h.orderUC.HasHistory(ctx, from)
	return h.menuUC.ComposeMenu(session, activeOrders, hasHistory)
}

func (h *Handler) formatActiveOrders(ctx context.Context, from string) string {
	orders := h.orderUC.ActiveOrders(ctx, from)
	if len(orders) == 0 {
		return "No tienes pedidos en curso.\n\nEscribe *menu* para volver al menú principal."
	}

	var sb strings.Builder
	sb.WriteString("📦 *TUS PEDIDOS*\n\n")
	for _, p := range orders {
		sb.WriteString("*" + p.ID + "*\n")
		sb.WriteString(p.Product.DisplayName() + "\n")
		sb.WriteString("Estado: *" + p.Status + "*\n\n")
	}
	sb.WriteString("_Escribe *menu* para volver al menú principal_")
	return sb.String()
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(twimlResponse{Message: message})
}
