package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Encabezados de la hoja CatalogoWhatsApp (columnas A-J)
const (
	HeaderID           = "ID_Producto"
	HeaderName         = "Nombre"
	HeaderPriceKg      = "Precio_Kg"
	HeaderOrigin       = "Origen"
	HeaderScore        = "Puntaje"
	HeaderFarmer       = "Agricultor"
	HeaderStockKg      = "Stock_Kg"
	HeaderDescription  = "Descripcion"
	HeaderStatus       = "Estado"
	HeaderLastModified = "Ultima_Modificacion"
)

// StatusActive estado que hace visible un producto en el catálogo
const StatusActive = "ACTIVO"

// Product producto del catálogo. Los valores numéricos se conservan tal
// como vienen de la hoja (strings) para no perder precisión al reescribir.
type Product struct {
	ID           string
	Name         string
	PriceKg      string
	Origin       string
	Score        string
	Farmer       string
	StockKg      string
	Description  string
	Status       string
	LastModified string
	Extra        map[string]string // columnas fuera del esquema fijo
}

// ProductFromRecord construir un producto desde el registro
// encabezado -> celda de una fila de la hoja.
func ProductFromRecord(record map[string]string) Product {
	p := Product{
		ID:           record[HeaderID],
		Name:         record[HeaderName],
		PriceKg:      record[HeaderPriceKg],
		Origin:       record[HeaderOrigin],
		Score:        record[HeaderScore],
		Farmer:       record[HeaderFarmer],
		StockKg:      record[HeaderStockKg],
		Description:  record[HeaderDescription],
		Status:       record[HeaderStatus],
		LastModified: record[HeaderLastModified],
	}

	known := map[string]struct{}{
		HeaderID: {}, HeaderName: {}, HeaderPriceKg: {}, HeaderOrigin: {},
		HeaderScore: {}, HeaderFarmer: {}, HeaderStockKg: {},
		HeaderDescription: {}, HeaderStatus: {}, HeaderLastModified: {},
	}
	for header, value := range record {
		if _, ok := known[header]; ok {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[header] = value
	}

	return p
}

// Visible un producto es visible si está ACTIVO y su stock es un número
// positivo. Stock no numérico cuenta como no visible, nunca como error.
func (p Product) Visible() bool {
	if !strings.EqualFold(strings.TrimSpace(p.Status), StatusActive) {
		return false
	}
	stock, err := decimal.NewFromString(strings.TrimSpace(p.StockKg))
	if err != nil {
		return false
	}
	return stock.IsPositive()
}

// Price precio por kg como decimal; cero si no parsea
func (p Product) Price() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(p.PriceKg))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Stock stock en kg como decimal; cero si no parsea
func (p Product) Stock() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(p.StockKg))
	if err != nil {
		return decimal.Zero
	}
	return d
}
