package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

// Mensaje fijo cuando el catálogo está vacío o la hoja no responde
const emptyCatalogMessage = "📭 *No hay productos disponibles en este momento*"

const (
	catalogBanner    = "☕ *CATÁLOGO DE CAFÉ DISPONIBLE*"
	catalogSeparator = "━━━━━━━━━━━━━━━━━━━━━"
	productSeparator = "────────────────"
	catalogFooter    = "_Para ordenar, envía un mensaje con el nombre del café y la cantidad deseada_"
)

// CatalogUseCase operaciones de catálogo hacia la capa de chat. Los
// fallos de la hoja se registran y se aplanan a vacío/false: el cliente
// nunca ve un error crudo del backend.
type CatalogUseCase interface {
	// Catalog productos visibles; vacío si la hoja no responde
	Catalog(ctx context.Context) []entity.Product

	// Search primer producto visible que coincide; nil si no hay
	Search(ctx context.Context, term string) *entity.Product

	// UpdateStock actualizar stock por ID; false si no existe o falla
	UpdateStock(ctx context.Context, productID string, newStock decimal.Decimal) bool

	// FormatCatalog texto del catálogo para WhatsApp
	FormatCatalog(products []entity.Product) string
}

type catalogUseCase struct {
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

// NewCatalogUseCase crear el caso de uso de catálogo
func NewCatalogUseCase(catalogRepo repository.CatalogRepository, logger *zap.Logger) CatalogUseCase {
	return &catalogUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Catalog productos visibles; vacío si la hoja no responde
func (u *catalogUseCase) Catalog(ctx context.Context) []entity.Product {
	products, err := u.catalogRepo.Fetch(ctx)
	if err != nil {
		u.logger.Error("error obteniendo catálogo", zap.Error(err))
		return []entity.Product{}
	}
	return products
}

// Search primer producto visible que coincide; nil si no hay
func (u *catalogUseCase) Search(ctx context.Context, term string) *entity.Product {
	product, err := u.catalogRepo.Search(ctx, term)
	if err != nil {
		u.logger.Error("error buscando producto",
			zap.String("término", term),
			zap.Error(err))
		return nil
	}
	return product
}

// UpdateStock actualizar stock por ID; false si no existe o falla
func (u *catalogUseCase) UpdateStock(ctx context.Context, productID string, newStock decimal.Decimal) bool {
	ok, err := u.catalogRepo.UpdateStock(ctx, productID, newStock)
	if err != nil {
		u.logger.Error("error actualizando stock",
			zap.String("producto", productID),
			zap.Error(err))
		return false
	}
	return ok
}

// FormatCatalog texto del catálogo para WhatsApp. Un producto que no se
// puede formatear se omite sin tumbar el resto del mensaje.
func (u *catalogUseCase) FormatCatalog(products []entity.Product) string {
	if len(products) == 0 {
		return emptyCatalogMessage
	}

	var sb strings.Builder
	sb.WriteString(catalogBanner + "\n")
	sb.WriteString(catalogSeparator + "\n\n")

	for _, p := range products {
		block, err := formatProduct(p)
		if err != nil {
			u.logger.Warn("producto omitido del catálogo", zap.Error(err))
			continue
		}
		sb.WriteString(block)
	}

	sb.WriteString(catalogFooter)
	return sb.String()
}

func formatProduct(p entity.Product) (string, error) {
	if p.ID == "" && p.Name == "" {
		return "", fmt.Errorf("producto sin identidad ni nombre")
	}

	nombre := fallback(p.Name, "Sin nombre")
	precio := fallback(p.PriceKg, "0")
	stock := fallback(p.StockKg, "0")
	origen := fallback(p.Origin, "No especificado")
	puntaje := fallback(p.Score, "-")
	agricultor := fallback(p.Farmer, "No especificado")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n", nombre))
	sb.WriteString(fmt.Sprintf("💰 S/%s por kg\n", precio))
	sb.WriteString(fmt.Sprintf("📦 Disponible: %s kg\n", stock))
	sb.WriteString(fmt.Sprintf("📍 Origen: %s\n", origen))
	sb.WriteString(fmt.Sprintf("⭐ Puntaje: %s/100\n", puntaje))
	sb.WriteString(fmt.Sprintf("👨‍🌾 Agricultor: %s\n", agricultor))
	sb.WriteString(productSeparator + "\n\n")
	return sb.String(), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
