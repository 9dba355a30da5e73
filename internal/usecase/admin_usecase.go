package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

// AdminUseCase operaciones administrativas del catálogo
type AdminUseCase interface {
	// ImportCatalog volcar un archivo .xlsx a la hoja del catálogo.
	// Devuelve la cantidad de productos escritos.
	ImportCatalog(ctx context.Context, filePath string) (int, error)
}

type adminUseCase struct {
	parser repository.CatalogParser
	client repository.SheetsClient
	sheet  string
	logger *zap.Logger
}

// NewAdminUseCase crear el caso de uso administrativo
func NewAdminUseCase(parser repository.CatalogParser, client repository.SheetsClient, sheet string, logger *zap.Logger) AdminUseCase {
	return &adminUseCase{
		parser: parser,
		client: client,
		sheet:  sheet,
		logger: logger,
	}
}

// ImportCatalog volcar un archivo .xlsx a la hoja del catálogo. Una sola
// escritura de rango: encabezado más todas las filas juntas.
func (u *adminUseCase) ImportCatalog(ctx context.Context, filePath string) (int, error) {
	products, err := u.parser.ParseCatalog(ctx, filePath)
	if err != nil {
		return 0, fmt.Errorf("no se pudo leer el catálogo: %w", err)
	}

	rows := [][]string{{
		entity.HeaderID,
		entity.HeaderName,
		entity.HeaderPriceKg,
		entity.HeaderOrigin,
		entity.HeaderScore,
		entity.HeaderFarmer,
		entity.HeaderStockKg,
		entity.HeaderDescription,
		entity.HeaderStatus,
		entity.HeaderLastModified,
	}}

	for _, p := range products {
		rows = append(rows, []string{
			p.ID, p.Name, p.PriceKg, p.Origin, p.Score,
			p.Farmer, p.StockKg, p.Description, p.Status, p.LastModified,
		})
	}

	if err := u.client.Write(ctx, u.sheet+"!A1", rows, repository.InputModeUserEntered); err != nil {
		return 0, fmt.Errorf("no se pudo escribir el catálogo: %w", err)
	}

	u.logger.Info("catálogo importado",
		zap.String("archivo", filePath),
		zap.Int("productos", len(products)))
	return len(products), nil
}
