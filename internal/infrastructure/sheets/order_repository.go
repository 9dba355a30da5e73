package sheets

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

// Columna Estado en la hoja PedidosWhatsApp
const orderStatusColumn = "P"

const (
	orderDateLayout = "02/01/2006"
	orderTimeLayout = "15:04"
)

type orderRepository struct {
	client   repository.SheetsClient
	sheet    string
	timezone *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewOrderRepository pedidos sobre la hoja indicada
func NewOrderRepository(client repository.SheetsClient, sheet string, timezone *time.Location, logger *zap.Logger) repository.OrderRepository {
	return &orderRepository{
		client:   client,
		sheet:    sheet,
		timezone: timezone,
		now:      time.Now,
		logger:   logger,
	}
}

// Append registrar un pedido confirmado como fila nueva (columnas A-S)
func (r *orderRepository) Append(ctx context.Context, order entity.Order) error {
	created := order.CreatedAt
	if created.IsZero() {
		created = r.now()
	}
	created = created.In(r.timezone)
	delivery := created.Add(24 * time.Hour)

	row := []string{
		order.ID,
		created.Format(orderDateLayout),
		created.Format(orderTimeLayout),
		order.Client,
		order.Business,
		order.Phone,
		order.ProductName,
		order.QuantityKg.String(),
		order.PriceKg.String(),
		order.Subtotal.String(),
		order.Discount.String(),
		order.Total.String(),
		order.Address,
		order.Contact,
		order.Notes,
		order.Status,
		delivery.Format(orderDateLayout),
		order.PaymentMethod,
		"WhatsApp",
	}

	if err := r.client.Append(ctx, r.sheet+"!A:S", [][]string{row}, repository.InputModeUserEntered); err != nil {
		return fmt.Errorf("error guardando pedido %s: %w", order.ID, err)
	}

	r.logger.Info("pedido guardado en la hoja", zap.String("pedido", order.ID))
	return nil
}

// ListActive pedidos del teléfono que siguen en curso, recientes primero
func (r *orderRepository) ListActive(ctx context.Context, phone string) ([]entity.ActiveOrder, error) {
	rows, err := r.client.Read(ctx, r.sheet+"!A:T")
	if err != nil {
		return nil, fmt.Errorf("error leyendo pedidos: %w", err)
	}

	if len(rows) < 2 {
		return []entity.ActiveOrder{}, nil
	}

	idx := indexHeaders(rows[0])
	wanted := normalizePhone(phone)

	type datedOrder struct {
		order entity.ActiveOrder
		at    time.Time
	}
	var matches []datedOrder

	for _, row := range rows[1:] {
		rowPhone := headerCell(row, idx, "Teléfono")
		if alt := headerCell(row, idx, "Usuario_WhatsApp"); alt != "" {
			rowPhone = alt
		}
		if normalizePhone(rowPhone) != wanted {
			continue
		}

		status := headerCell(row, idx, "Estado")
		if status == "" || isFinalStatus(status) {
			continue
		}

		fecha := headerCell(row, idx, "Fecha")
		if hora := headerCell(row, idx, "Hora"); hora != "" && fecha != "" {
			fecha = fecha + " " + hora
		}

		order := entity.ActiveOrder{
			ID:         headerCell(row, idx, "ID_Pedido"),
			Product:    entity.NameRef(headerCell(row, idx, "Producto")),
			QuantityKg: parseDecimal(headerCell(row, idx, "Cantidad_kg")),
			Total:      parseDecimal(headerCell(row, idx, "Total")),
			Status:     status,
			Fecha:      fecha,
		}
		if order.ID == "" {
			order.ID = "SIN-ID"
		}

		matches = append(matches, datedOrder{order: order, at: r.parseOrderTime(fecha)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].at.After(matches[j].at)
	})

	orders := make([]entity.ActiveOrder, 0, len(matches))
	for _, m := range matches {
		orders = append(orders, m.order)
	}
	return orders, nil
}

// UpdateStatus cambiar el estado de un pedido por ID
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID, status string) (bool, error) {
	rows, err := r.client.Read(ctx, r.sheet+"!A:A")
	if err != nil {
		return false, fmt.Errorf("error buscando pedido %s: %w", orderID, err)
	}

	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] != orderID {
			continue
		}

		statusRange := fmt.Sprintf("%s!%s%d", r.sheet, orderStatusColumn, i+1)
		if err := r.client.Write(ctx, statusRange, [][]string{{status}}, repository.InputModeUserEntered); err != nil {
			return false, fmt.Errorf("error actualizando estado de %s: %w", orderID, err)
		}

		r.logger.Info("estado de pedido actualizado",
			zap.String("pedido", orderID),
			zap.String("estado", status))
		return true, nil
	}

	return false, nil
}

// parseOrderTime fecha con hora, o solo fecha cuando la celda Hora está
// vacía; cero si no se reconoce (ordena al final)
func (r *orderRepository) parseOrderTime(fecha string) time.Time {
	if at, err := time.ParseInLocation(lastModifiedLayout, fecha, r.timezone); err == nil {
		return at
	}
	at, _ := time.ParseInLocation(orderDateLayout, fecha, r.timezone)
	return at
}

func indexHeaders(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// headerCell celda por nombre de encabezado; vacía cuando el encabezado
// no existe o la fila es corta
func headerCell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func normalizePhone(phone string) string {
	phone = strings.TrimPrefix(phone, "whatsapp:")
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isFinalStatus(status string) bool {
	switch status {
	case entity.OrderStatusCompleted, entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		return true
	}
	return false
}
