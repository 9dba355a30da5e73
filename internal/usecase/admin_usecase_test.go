package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

type fakeCatalogParser struct {
	products []entity.Product
	err      error
}

func (f *fakeCatalogParser) ParseCatalog(ctx context.Context, filePath string) ([]entity.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalogParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	return f.products, f.err
}

type fakeSheetsWriter struct {
	writtenRange string
	writtenRows  [][]string
	writeErr     error
}

func (f *fakeSheetsWriter) Read(ctx context.Context, readRange string) ([][]string, error) {
	return nil, nil
}

func (f *fakeSheetsWriter) Write(ctx context.Context, writeRange string, rows [][]string, inputMode string) error {
	f.writtenRange = writeRange
	f.writtenRows = rows
	return f.writeErr
}

func (f *fakeSheetsWriter) Append(ctx context.Context, appendRange string, rows [][]string, inputMode string) error {
	return nil
}

func TestImportCatalog(t *testing.T) {
	parser := &fakeCatalogParser{products: []entity.Product{sampleProduct()}}
	client := &fakeSheetsWriter{}
	u := NewAdminUseCase(parser, client, "CatalogoWhatsApp", zap.NewNop())

	count, err := u.ImportCatalog(context.Background(), "catalogo.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, "CatalogoWhatsApp!A1", client.writtenRange)
	require.Len(t, client.writtenRows, 2)
	assert.Equal(t, entity.HeaderID, client.writtenRows[0][0])
	assert.Equal(t, "CAT-001", client.writtenRows[1][0])
	assert.Equal(t, "Café Orgánico Premium", client.writtenRows[1][1])
}

func TestImportCatalogParseFailure(t *testing.T) {
	parser := &fakeCatalogParser{err: errSheetDown}
	u := NewAdminUseCase(parser, &fakeSheetsWriter{}, "CatalogoWhatsApp", zap.NewNop())

	_, err := u.ImportCatalog(context.Background(), "catalogo.xlsx")
	require.Error(t, err)
}
