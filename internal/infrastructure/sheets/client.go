package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

const maxRetries = 2

// Client cliente de Google Sheets con timeout acotado y reintentos.
// Las lecturas y appends se reintentan; las escrituras de celda no,
// porque un timeout no dice si la escritura llegó a aplicarse.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewClient crear el cliente con credenciales de service account
func NewClient(ctx context.Context, spreadsheetID, credentialsPath string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("no se pudo crear el servicio de sheets: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

// Read leer las filas de un rango
func (c *Client) Read(ctx context.Context, rangeSpec string) ([][]string, error) {
	var resp *sheetsapi.ValueRange

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var err error
		resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeSpec).Context(callCtx).Do()
		return err
	}

	if err := c.retry(ctx, op); err != nil {
		return nil, fmt.Errorf("error leyendo rango %s: %w", rangeSpec, err)
	}

	return toStringRows(resp.Values), nil
}

// Write escribir filas a partir del inicio del rango
func (c *Client) Write(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &sheetsapi.ValueRange{Values: toInterfaceRows(rows)}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeSpec, body).
		ValueInputOption(inputMode).
		Context(callCtx).
		Do()
	if err != nil {
		return fmt.Errorf("error escribiendo rango %s: %w", rangeSpec, err)
	}
	return nil
}

// Append agregar filas al final de la tabla del rango
func (c *Client) Append(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error {
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		body := &sheetsapi.ValueRange{Values: toInterfaceRows(rows)}
		_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeSpec, body).
			ValueInputOption(inputMode).
			InsertDataOption("INSERT_ROWS").
			Context(callCtx).
			Do()
		return err
	}

	if err := c.retry(ctx, op); err != nil {
		return fmt.Errorf("error agregando filas en %s: %w", rangeSpec, err)
	}
	return nil
}

func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		c.logger.Warn("llamada a sheets falló, reintentando",
			zap.Error(err),
			zap.Duration("espera", wait))
	})
}

func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}

func toInterfaceRows(rows [][]string) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}
	return values
}

var _ repository.SheetsClient = (*Client)(nil)
