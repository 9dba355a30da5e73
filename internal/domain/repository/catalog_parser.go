package repository

import (
	"context"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

// CatalogParser lectura de catálogos desde archivos Excel
type CatalogParser interface {
	// ParseCatalog leer los productos de un archivo .xlsx
	ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error)

	// ParseCatalogFromBytes leer los productos desde memoria
	ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error)
}
