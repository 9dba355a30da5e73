package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

// Pedido mínimo en kilogramos
var minOrderKg = decimal.NewFromInt(5)

// Estado inicial de todo pedido confirmado
const initialOrderStatus = "Pendiente verificación"

// OrderUseCase ciclo de vida del pedido: borrador en sesión, confirmación
// a la hoja y espejo local, y consultas para el menú.
type OrderUseCase interface {
	// StartDraft iniciar un borrador con el producto elegido
	StartDraft(ctx context.Context, phone string, product entity.Product) error

	// SetQuantity fijar cantidad y calcular el total del borrador
	SetQuantity(ctx context.Context, phone string, quantityKg decimal.Decimal) error

	// Confirm confirmar el borrador: registra el pedido y descuenta stock
	Confirm(ctx context.Context, phone string, client entity.ClientData) (*entity.Order, error)

	// Cancel descartar el borrador
	Cancel(ctx context.Context, phone string) error

	// ActiveOrders pedidos en curso del teléfono; vacío si la hoja falla
	ActiveOrders(ctx context.Context, phone string) []entity.ActiveOrder

	// HasHistory el teléfono tiene pedidos anteriores registrados
	HasHistory(ctx context.Context, phone string) bool

	// KnownClient datos de entrega guardados; nil si es cliente nuevo
	KnownClient(ctx context.Context, phone string) *entity.ClientData
}

type orderUseCase struct {
	sessionRepo repository.SessionRepository
	orderRepo   repository.OrderRepository
	catalogRepo repository.CatalogRepository
	orderStore  repository.OrderStore
	logger      *zap.Logger
}

// NewOrderUseCase crear el caso de uso de pedidos
func NewOrderUseCase(
	sessionRepo repository.SessionRepository,
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	orderStore repository.OrderStore,
	logger *zap.Logger,
) OrderUseCase {
	return &orderUseCase{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		orderStore:  orderStore,
		logger:      logger,
	}
}

// StartDraft iniciar un borrador con el producto elegido
func (u *orderUseCase) StartDraft(ctx context.Context, phone string, product entity.Product) error {
	session, err := u.sessionRepo.Get(ctx, phone)
	if err != nil {
		return err
	}

	session.Draft = &entity.DraftOrder{Product: &product}
	session.Step = "cantidad"
	return u.sessionRepo.Save(ctx, session)
}

// SetQuantity fijar cantidad y calcular el total del borrador
func (u *orderUseCase) SetQuantity(ctx context.Context, phone string, quantityKg decimal.Decimal) error {
	session, err := u.sessionRepo.Get(ctx, phone)
	if err != nil {
		return err
	}
	if !session.HasDraft() {
		return fmt.Errorf("no hay un pedido en curso")
	}
	if quantityKg.LessThan(minOrderKg) {
		return fmt.Errorf("el pedido mínimo es de %skg", minOrderKg.String())
	}

	total := session.Draft.Product.Price().Mul(quantityKg)
	session.Draft.QuantityKg = &quantityKg
	session.Draft.Total = &total
	session.Step = "confirmar_pedido"
	return u.sessionRepo.Save(ctx, session)
}

// Confirm confirmar el borrador: registra el pedido y descuenta stock.
// Si el descuento de stock falla, el pedido ya quedó registrado; solo se
// deja constancia en el log.
func (u *orderUseCase) Confirm(ctx context.Context, phone string, client entity.ClientData) (*entity.Order, error) {
	session, err := u.sessionRepo.Get(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !session.HasDraft() || session.Draft.QuantityKg == nil || session.Draft.Total == nil {
		return nil, fmt.Errorf("el pedido en curso está incompleto")
	}

	draft := session.Draft
	product := draft.Product

	order := entity.Order{
		ID:            newOrderID(),
		Client:        client.Contact,
		Business:      client.Business,
		Phone:         phone,
		ProductName:   product.Name,
		QuantityKg:    *draft.QuantityKg,
		PriceKg:       product.Price(),
		Subtotal:      *draft.Total,
		Discount:      decimal.Zero,
		Total:         *draft.Total,
		Address:       client.Address,
		Contact:       client.Contact,
		Status:        initialOrderStatus,
		PaymentMethod: "Por definir",
		CreatedAt:     time.Now(),
	}

	if err := u.orderRepo.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("no se pudo registrar el pedido: %w", err)
	}

	if err := u.orderStore.SaveOrder(ctx, order); err != nil {
		u.logger.Warn("no se pudo guardar la copia local del pedido",
			zap.String("pedido", order.ID),
			zap.Error(err))
	}

	client.Phone = phone
	if err := u.orderStore.SaveClient(ctx, client); err != nil {
		u.logger.Warn("no se pudieron guardar los datos del cliente", zap.Error(err))
	}

	// Descontar stock, sin bajar de cero
	newStock := product.Stock().Sub(*draft.QuantityKg)
	if newStock.IsNegative() {
		newStock = decimal.Zero
	}
	if ok, err := u.catalogRepo.UpdateStock(ctx, product.ID, newStock); err != nil || !ok {
		u.logger.Warn("no se pudo descontar el stock",
			zap.String("producto", product.ID),
			zap.Error(err))
	}

	session.Draft = nil
	session.Step = "menu_principal"
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.logger.Warn("no se pudo limpiar la sesión", zap.Error(err))
	}

	u.logger.Info("pedido confirmado",
		zap.String("pedido", order.ID),
		zap.String("producto", order.ProductName),
		zap.String("total", order.Total.StringFixed(2)))
	return &order, nil
}

// Cancel descartar el borrador
func (u *orderUseCase) Cancel(ctx context.Context, phone string) error {
	session, err := u.sessionRepo.Get(ctx, phone)
	if err != nil {
		return err
	}
	session.Draft = nil
	session.Step = "menu_principal"
	return u.sessionRepo.Save(ctx, session)
}

// ActiveOrders pedidos en curso del teléfono; vacío si la hoja falla
func (u *orderUseCase) ActiveOrders(ctx context.Context, phone string) []entity.ActiveOrder {
	orders, err := u.orderRepo.ListActive(ctx, phone)
	if err != nil {
		u.logger.Error("error listando pedidos activos",
			zap.String("teléfono", phone),
			zap.Error(err))
		return []entity.ActiveOrder{}
	}
	return orders
}

// HasHistory el teléfono tiene pedidos anteriores registrados
func (u *orderUseCase) HasHistory(ctx context.Context, phone string) bool {
	count, err := u.orderStore.CountByPhone(ctx, phone)
	if err != nil {
		u.logger.Warn("error consultando historial", zap.Error(err))
		return false
	}
	return count > 0
}

// KnownClient datos de entrega guardados; nil si es cliente nuevo
func (u *orderUseCase) KnownClient(ctx context.Context, phone string) *entity.ClientData {
	client, err := u.orderStore.GetClient(ctx, phone)
	if err != nil {
		u.logger.Warn("error consultando datos del cliente", zap.Error(err))
		return nil
	}
	return client
}

func newOrderID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "PED-" + raw[:8]
}
