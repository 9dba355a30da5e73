package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

// CatalogRepository catálogo de productos respaldado por la hoja de
// cálculo. Cada llamada relee el rango completo; no hay caché.
type CatalogRepository interface {
	// Fetch obtener los productos visibles en el orden de la hoja
	Fetch(ctx context.Context) ([]entity.Product, error)

	// Search primer producto visible cuyo nombre contiene el término
	// (sin distinguir mayúsculas); nil si no hay coincidencia
	Search(ctx context.Context, term string) (*entity.Product, error)

	// UpdateStock actualizar el stock y la fecha de modificación de un
	// producto por ID exacto (también filas inactivas o sin stock).
	// false sin error cuando el ID no existe.
	UpdateStock(ctx context.Context, productID string, newStock decimal.Decimal) (bool, error)
}
