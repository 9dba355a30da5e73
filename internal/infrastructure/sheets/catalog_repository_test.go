package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var lima = time.FixedZone("-05", -5*60*60)

func catalogHeaders() []string {
	return []string{
		"ID_Producto", "Nombre", "Precio_Kg", "Origen", "Puntaje",
		"Agricultor", "Stock_Kg", "Descripcion", "Estado", "Ultima_Modificacion",
	}
}

func newTestCatalogRepo(client *fakeSheetsClient) *catalogRepository {
	repo := NewCatalogRepository(client, "CatalogoWhatsApp", lima, zap.NewNop()).(*catalogRepository)
	repo.now = func() time.Time {
		return time.Date(2025, 9, 28, 14, 30, 0, 0, lima)
	}
	return repo
}

func TestFetchFiltersVisibility(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-001", "Café de Colombia Premium", "27.50", "Cusco", "88", "Juan Quispe", "10.5", "Notas florales", "ACTIVO", "01/09/2025 10:00"},
		{"CAT-002", "Café Inactivo", "25", "Puno", "85", "Rosa Mamani", "8", "", "INACTIVO", ""},
		{"CAT-003", "Café Agotado", "30", "Junín", "90", "Pedro Huamán", "0", "", "ACTIVO", ""},
		{"CAT-004", "Café Sin Stock Válido", "30", "Junín", "90", "Pedro Huamán", "abc", "", "ACTIVO", ""},
		{"", "Fila sin ID", "30", "", "", "", "5", "", "ACTIVO", ""},
		{"CAT-005", "Café en Minúsculas", "22", "Amazonas", "84", "María Torres", "3", "", "activo", ""},
	}

	repo := newTestCatalogRepo(client)
	products, err := repo.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "CAT-001", products[0].ID)
	assert.Equal(t, "CAT-005", products[1].ID)
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.True(t, p.Visible())
	}
}

func TestFetchHeaderOnlyIsEmpty(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{catalogHeaders()}

	repo := newTestCatalogRepo(client)
	products, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchEmptySheetIsEmpty(t *testing.T) {
	client := newFakeSheetsClient()

	repo := newTestCatalogRepo(client)
	products, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchStoreFailure(t *testing.T) {
	client := newFakeSheetsClient()
	client.readErr = errStoreDown

	repo := newTestCatalogRepo(client)
	products, err := repo.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, products)
}

func TestFetchZipsRowsAgainstHeader(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		// fila corta: los encabezados sobrantes quedan sin asignar
		{"CAT-001", "Café Corto", "20", "Cusco", "80", "Juan", "5", "", "ACTIVO"},
		// fila más larga que el encabezado: el sobrante se descarta
		{"CAT-002", "Café Largo", "21", "Puno", "81", "Rosa", "6", "", "ACTIVO", "01/09/2025", "celda extra"},
	}

	repo := newTestCatalogRepo(client)
	products, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Empty(t, products[0].LastModified)
	assert.Equal(t, "01/09/2025", products[1].LastModified)
	assert.Empty(t, products[1].Extra)
}

func TestSearchFindsBySubstring(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-001", "Café Orgánico Premium", "27.50", "Cusco", "88", "Juan Quispe", "10", "", "ACTIVO", ""},
		{"CAT-002", "Café de Colombia Premium", "30", "Nariño", "90", "Luis Díaz", "7", "", "ACTIVO", ""},
	}

	repo := newTestCatalogRepo(client)

	found, err := repo.Search(context.Background(), "colombia")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CAT-002", found.ID)

	missing, err := repo.Search(context.Background(), "geisha")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateStockWritesStockAndTimestamp(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-001", "Café Orgánico Premium", "27.50", "Cusco", "88", "Juan Quispe", "10", "", "ACTIVO", ""},
		{"CAT-002", "Café Inactivo", "25", "Puno", "85", "Rosa Mamani", "8", "", "INACTIVO", ""},
	}

	repo := newTestCatalogRepo(client)

	ok, err := repo.UpdateStock(context.Background(), "CAT-001", decimal.RequireFromString("7.25"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, client.writes, 2)
	assert.Equal(t, "CatalogoWhatsApp!G2", client.writes[0].rangeSpec)
	assert.Equal(t, [][]string{{"7.25"}}, client.writes[0].rows)
	assert.Equal(t, "CatalogoWhatsApp!J2", client.writes[1].rangeSpec)
	assert.Equal(t, [][]string{{"28/09/2025 14:30"}}, client.writes[1].rows)
}

func TestUpdateStockReachesInactiveRows(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-002", "Café Inactivo", "25", "Puno", "85", "Rosa Mamani", "8", "", "INACTIVO", ""},
	}

	repo := newTestCatalogRepo(client)

	ok, err := repo.UpdateStock(context.Background(), "CAT-002", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, client.writes, 2)
}

func TestUpdateStockUnknownID(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-001", "Café Orgánico Premium", "27.50", "Cusco", "88", "Juan Quispe", "10", "", "ACTIVO", ""},
	}

	repo := newTestCatalogRepo(client)

	ok, err := repo.UpdateStock(context.Background(), "CAT-999", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, client.writes)
}

func TestUpdateStockWriteFailure(t *testing.T) {
	client := newFakeSheetsClient()
	client.rows["CatalogoWhatsApp!A:J"] = [][]string{
		catalogHeaders(),
		{"CAT-001", "Café Orgánico Premium", "27.50", "Cusco", "88", "Juan Quispe", "10", "", "ACTIVO", ""},
	}
	client.writeErr = errStoreDown

	repo := newTestCatalogRepo(client)

	ok, err := repo.UpdateStock(context.Background(), "CAT-001", decimal.NewFromInt(5))
	require.Error(t, err)
	assert.False(t, ok)
}
