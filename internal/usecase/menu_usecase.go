package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

const menuSeparator = "━━━━━━━━━━━━━━━━━"

// Formatos aceptados para la fecha de un pedido: ISO de la API y los
// formatos dd/mm de la propia hoja
var orderTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// MenuUseCase composición del menú principal. Transformación pura de
// datos a texto; sin I/O.
type MenuUseCase interface {
	// ComposeMenu menú con pedidos activos, borrador y opciones fijas
	ComposeMenu(session *entity.UserSession, activeOrders []entity.ActiveOrder, hasHistory bool) string
}

type menuUseCase struct {
	timezone *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewMenuUseCase crear el compositor de menú con la zona horaria del
// negocio para interpretar fechas sin zona
func NewMenuUseCase(timezone *time.Location, logger *zap.Logger) MenuUseCase {
	return &menuUseCase{
		timezone: timezone,
		now:      time.Now,
		logger:   logger,
	}
}

// ComposeMenu menú con pedidos activos, borrador y opciones fijas
func (u *menuUseCase) ComposeMenu(session *entity.UserSession, activeOrders []entity.ActiveOrder, hasHistory bool) string {
	header := ""

	if len(activeOrders) > 0 {
		header += "*TUS PEDIDOS ACTIVOS:*\n"
		header += menuSeparator + "\n"

		for _, p := range activeOrders {
			header += fmt.Sprintf("\n*%s*\n", p.ID)
			header += p.Product.DisplayName() + "\n"
			header += fmt.Sprintf("%skg - S/%s\n", p.QuantityKg.String(), p.Total.StringFixed(2))
			header += fmt.Sprintf("Estado: *%s*\n", p.Status)
			header += fmt.Sprintf("Hace %s\n", u.elapsedText(p))
		}

		header += "\n_Usa el código para consultar detalles_\n"
		header += menuSeparator + "\n\n"
	}

	if session.HasDraft() {
		draft := session.Draft

		cantidad := "cantidad por definir"
		if draft.QuantityKg != nil {
			cantidad = draft.QuantityKg.String() + "kg"
		}
		total := "por calcular"
		if draft.Total != nil {
			total = "S/" + draft.Total.StringFixed(2)
		}

		header += "*PEDIDO ACTUAL (sin confirmar)*\n"
		header += menuSeparator + "\n"
		header += draft.Product.Name + "\n"
		header += "Cantidad: " + cantidad + "\n"
		header += "Total: " + total + "\n"
		header += menuSeparator + "\n\n"
		header += "_Escribe *cancelar* para eliminar_\n\n"
	}

	reorder := ""
	if hasHistory {
		reorder = "*4* - Volver a pedir\n"
	}

	return header + "*MENÚ PRINCIPAL*\n\n" +
		"*1* - Ver catálogo y pedir\n" +
		"*2* - Consultar pedido\n" +
		"*3* - Información del negocio\n" +
		reorder +
		"\nEnvía el número de tu elección"
}

// elapsedText tiempo transcurrido desde la fecha del pedido. Fecha
// ausente o inválida rinde "Hoy"; una fecha futura rinde "Reciente".
// Nunca interrumpe la composición del menú.
func (u *menuUseCase) elapsedText(order entity.ActiveOrder) string {
	when, ok := u.parseWhen(order.Timestamp)
	if !ok {
		when, ok = u.parseWhen(order.Fecha)
	}
	if !ok {
		return "Hoy"
	}

	transcurrido := u.now().Sub(when)
	if transcurrido < 0 {
		return "Reciente"
	}

	minutos := int(transcurrido.Minutes())
	switch {
	case minutos < 60:
		return fmt.Sprintf("%d min", minutos)
	case minutos < 1440:
		horas := minutos / 60
		if horas == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", horas)
	default:
		dias := minutos / 1440
		if dias == 1 {
			return "1 día"
		}
		return fmt.Sprintf("%d días", dias)
	}
}

func (u *menuUseCase) parseWhen(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range orderTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, u.timezone); err == nil {
			return t, true
		}
	}
	u.logger.Debug("fecha de pedido no reconocida", zap.String("fecha", raw))
	return time.Time{}, false
}
