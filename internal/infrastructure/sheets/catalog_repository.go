package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

// Formato de Ultima_Modificacion en la hoja (hora local del negocio)
const lastModifiedLayout = "02/01/2006 15:04"

// Columnas de escritura del esquema fijo A-J. Son contrato de formato:
// G recibe el stock y J la fecha de modificación.
const (
	stockColumn        = "G"
	lastModifiedColumn = "J"
)

type catalogRepository struct {
	client   repository.SheetsClient
	sheet    string
	timezone *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewCatalogRepository catálogo sobre la hoja indicada. La zona horaria
// fija el formato de Ultima_Modificacion en las escrituras de stock.
func NewCatalogRepository(client repository.SheetsClient, sheet string, timezone *time.Location, logger *zap.Logger) repository.CatalogRepository {
	return &catalogRepository{
		client:   client,
		sheet:    sheet,
		timezone: timezone,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *catalogRepository) fullRange() string {
	return r.sheet + "!A:J"
}

// Fetch obtener los productos visibles en el orden de la hoja
func (r *catalogRepository) Fetch(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.client.Read(ctx, r.fullRange())
	if err != nil {
		return nil, fmt.Errorf("error obteniendo catálogo: %w", err)
	}

	// Solo encabezado o nada: catálogo vacío, no error
	if len(rows) < 2 {
		return []entity.Product{}, nil
	}

	headers := rows[0]
	products := make([]entity.Product, 0, len(rows)-1)

	for _, row := range rows[1:] {
		// La identidad de la fila es la primera celda
		if len(row) == 0 || row[0] == "" {
			continue
		}

		product := entity.ProductFromRecord(zipRecord(headers, row))
		if product.Visible() {
			products = append(products, product)
		}
	}

	return products, nil
}

// Search primer producto visible cuyo nombre contiene el término
func (r *catalogRepository) Search(ctx context.Context, term string) (*entity.Product, error) {
	products, err := r.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	for i := range products {
		if strings.Contains(strings.ToLower(products[i].Name), needle) {
			return &products[i], nil
		}
	}

	return nil, nil
}

// UpdateStock actualizar stock y fecha de modificación por ID exacto.
// Son dos escrituras de celda independientes, no atómicas: si la segunda
// falla queda el stock nuevo con la fecha vieja (semántica documentada).
// Tampoco hay detección de conflictos entre clientes concurrentes: gana
// la última escritura.
func (r *catalogRepository) UpdateStock(ctx context.Context, productID string, newStock decimal.Decimal) (bool, error) {
	rows, err := r.client.Read(ctx, r.fullRange())
	if err != nil {
		return false, fmt.Errorf("error releyendo catálogo: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // encabezado
		}
		if len(row) == 0 || row[0] != productID {
			continue
		}

		sheetRow := i + 1 // filas de hoja desde 1

		stockRange := fmt.Sprintf("%s!%s%d", r.sheet, stockColumn, sheetRow)
		if err := r.client.Write(ctx, stockRange, [][]string{{newStock.String()}}, repository.InputModeUserEntered); err != nil {
			return false, fmt.Errorf("error actualizando stock de %s: %w", productID, err)
		}

		modified := r.now().In(r.timezone).Format(lastModifiedLayout)
		modifiedRange := fmt.Sprintf("%s!%s%d", r.sheet, lastModifiedColumn, sheetRow)
		if err := r.client.Write(ctx, modifiedRange, [][]string{{modified}}, repository.InputModeUserEntered); err != nil {
			return false, fmt.Errorf("error actualizando fecha de %s: %w", productID, err)
		}

		r.logger.Info("stock actualizado",
			zap.String("producto", productID),
			zap.String("stock", newStock.String()))
		return true, nil
	}

	return false, nil
}

// zipRecord emparejar encabezados y celdas por posición. Encabezados más
// allá del largo de la fila quedan sin asignar; celdas sobrantes de una
// fila más larga que el encabezado se descartan.
func zipRecord(headers, row []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		record[header] = row[i]
	}
	return record
}
