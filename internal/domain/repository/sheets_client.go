package repository

import "context"

// Modos de escritura de la API de hojas de cálculo
const (
	InputModeUserEntered = "USER_ENTERED"
	InputModeRaw         = "RAW"
)

// SheetsClient acceso genérico a un rango rectangular de celdas. Los
// rangos usan notación A1: "<Hoja>!<ColIni><FilaIni>:<ColFin>[<FilaFin>]".
type SheetsClient interface {
	// Read leer las filas de un rango
	Read(ctx context.Context, rangeSpec string) ([][]string, error)

	// Write escribir filas a partir del inicio del rango
	Write(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error

	// Append agregar filas al final de la tabla del rango
	Append(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error
}
