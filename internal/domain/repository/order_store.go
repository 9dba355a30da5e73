package repository

import (
	"context"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

// OrderStore espejo local de pedidos confirmados y clientes conocidos.
// Respaldo rápido para el historial sin ir a la hoja de cálculo.
type OrderStore interface {
	// SaveOrder guardar la copia local de un pedido confirmado
	SaveOrder(ctx context.Context, order entity.Order) error

	// CountByPhone cantidad de pedidos registrados del teléfono
	CountByPhone(ctx context.Context, phone string) (int, error)

	// SaveClient guardar los datos de entrega de un cliente
	SaveClient(ctx context.Context, client entity.ClientData) error

	// GetClient datos del cliente; nil si no se conoce
	GetClient(ctx context.Context, phone string) (*entity.ClientData, error)

	// Close cerrar el almacenamiento
	Close() error
}
