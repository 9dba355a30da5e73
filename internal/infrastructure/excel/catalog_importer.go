package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

type catalogImporter struct {
	logger *zap.Logger
}

// NewCatalogImporter lector de catálogos .xlsx con el esquema fijo de la
// hoja CatalogoWhatsApp (ID_Producto ... Ultima_Modificacion)
func NewCatalogImporter(logger *zap.Logger) repository.CatalogParser {
	return &catalogImporter{logger: logger}
}

// ParseCatalog leer los productos de un archivo .xlsx
func (c *catalogImporter) ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el archivo excel: %w", err)
	}
	defer f.Close()

	return c.parse(f)
}

// ParseCatalogFromBytes leer los productos desde memoria
func (c *catalogImporter) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir %s: %w", filename, err)
	}
	defer f.Close()

	return c.parse(f)
}

func (c *catalogImporter) parse(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el archivo excel no tiene hojas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("no se pudieron leer las filas: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("el archivo no tiene filas de datos")
	}

	headers := rows[0]
	if err := validateHeaders(headers); err != nil {
		return nil, err
	}

	var products []entity.Product
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		record := make(map[string]string, len(headers))
		for j, header := range headers {
			if j >= len(row) {
				break
			}
			record[strings.TrimSpace(header)] = strings.TrimSpace(row[j])
		}

		product := entity.ProductFromRecord(record)
		if product.Name == "" {
			c.logger.Warn("fila sin nombre de producto, se omite", zap.Int("fila", i+2))
			continue
		}
		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no se encontraron productos válidos en el archivo")
	}

	c.logger.Info("catálogo leído desde excel", zap.Int("productos", len(products)))
	return products, nil
}

// validateHeaders el archivo debe traer al menos las columnas de
// identidad, nombre y stock del esquema
func validateHeaders(headers []string) error {
	required := []string{entity.HeaderID, entity.HeaderName, entity.HeaderPriceKg, entity.HeaderStockKg}
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[strings.TrimSpace(h)] = true
	}
	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("falta la columna %q en el encabezado", name)
		}
	}
	return nil
}
