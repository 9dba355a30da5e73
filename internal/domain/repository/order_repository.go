package repository

import (
	"context"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

// OrderRepository pedidos en la hoja PedidosWhatsApp
type OrderRepository interface {
	// Append registrar un pedido confirmado como fila nueva
	Append(ctx context.Context, order entity.Order) error

	// ListActive pedidos del teléfono que siguen en curso, del más
	// reciente al más antiguo
	ListActive(ctx context.Context, phone string) ([]entity.ActiveOrder, error)

	// UpdateStatus cambiar el estado de un pedido por ID; false sin
	// error cuando el ID no existe
	UpdateStatus(ctx context.Context, orderID, status string) (bool, error)
}
