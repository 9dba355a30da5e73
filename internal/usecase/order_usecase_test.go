package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

type fakeSessionRepo struct {
	sessions map[string]*entity.UserSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.UserSession)}
}

func (f *fakeSessionRepo) Get(ctx context.Context, phone string) (*entity.UserSession, error) {
	if s, ok := f.sessions[phone]; ok {
		return s, nil
	}
	s := &entity.UserSession{Phone: phone, Step: "inicio"}
	f.sessions[phone] = s
	return s, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *entity.UserSession) error {
	f.sessions[session.Phone] = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, phone string) error {
	delete(f.sessions, phone)
	return nil
}

type fakeOrderRepo struct {
	appended  []entity.Order
	active    []entity.ActiveOrder
	appendErr error
	listErr   error
}

func (f *fakeOrderRepo) Append(ctx context.Context, order entity.Order) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, order)
	return nil
}

func (f *fakeOrderRepo) ListActive(ctx context.Context, phone string) ([]entity.ActiveOrder, error) {
	return f.active, f.listErr
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID, status string) (bool, error) {
	return true, nil
}

type fakeOrderStore struct {
	orders  []entity.Order
	clients map[string]entity.ClientData
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{clients: make(map[string]entity.ClientData)}
}

func (f *fakeOrderStore) SaveOrder(ctx context.Context, order entity.Order) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderStore) CountByPhone(ctx context.Context, phone string) (int, error) {
	count := 0
	for _, o := range f.orders {
		if o.Phone == phone {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderStore) SaveClient(ctx context.Context, client entity.ClientData) error {
	f.clients[client.Phone] = client
	return nil
}

func (f *fakeOrderStore) GetClient(ctx context.Context, phone string) (*entity.ClientData, error) {
	if c, ok := f.clients[phone]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeOrderStore) Close() error { return nil }

func TestOrderFlow(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessionRepo()
	orderRepo := &fakeOrderRepo{}
	catalogRepo := &fakeCatalogRepo{updateOK: true}
	store := newFakeOrderStore()

	u := NewOrderUseCase(sessions, orderRepo, catalogRepo, store, zap.NewNop())
	phone := "+51999888777"

	require.NoError(t, u.StartDraft(ctx, phone, sampleProduct()))

	// Menos del mínimo de 5kg se rechaza
	require.Error(t, u.SetQuantity(ctx, phone, decimal.NewFromInt(2)))
	require.NoError(t, u.SetQuantity(ctx, phone, decimal.NewFromInt(5)))

	session, _ := sessions.Get(ctx, phone)
	require.True(t, session.HasDraft())
	require.NotNil(t, session.Draft.Total)
	assert.True(t, session.Draft.Total.Equal(decimal.RequireFromString("137.50")))

	order, err := u.Confirm(ctx, phone, entity.ClientData{
		Business: "Mi Cafetería",
		Contact:  "Juan",
		Address:  "Av. Sol 123",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "PED-"))
	assert.Equal(t, "Pendiente verificación", order.Status)
	assert.Equal(t, "Café Orgánico Premium", order.ProductName)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("137.50")))

	// Registrado en la hoja y en el espejo local
	require.Len(t, orderRepo.appended, 1)
	require.Len(t, store.orders, 1)

	// El stock bajó de 10.5 a 5.5
	assert.Equal(t, "CAT-001", catalogRepo.updatedID)
	assert.True(t, catalogRepo.updatedStock.Equal(decimal.RequireFromString("5.5")))

	// El borrador se limpió y ahora hay historial
	session, _ = sessions.Get(ctx, phone)
	assert.False(t, session.HasDraft())
	assert.True(t, u.HasHistory(ctx, phone))

	client := u.KnownClient(ctx, phone)
	require.NotNil(t, client)
	assert.Equal(t, "Mi Cafetería", client.Business)
}

func TestConfirmWithoutDraft(t *testing.T) {
	u := NewOrderUseCase(newFakeSessionRepo(), &fakeOrderRepo{}, &fakeCatalogRepo{}, newFakeOrderStore(), zap.NewNop())

	_, err := u.Confirm(context.Background(), "+51999888777", entity.ClientData{})
	require.Error(t, err)
}

func TestConfirmStockNeverNegative(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessionRepo()
	catalogRepo := &fakeCatalogRepo{updateOK: true}
	u := NewOrderUseCase(sessions, &fakeOrderRepo{}, catalogRepo, newFakeOrderStore(), zap.NewNop())

	phone := "+51999888777"
	product := sampleProduct()
	product.StockKg = "6"
	require.NoError(t, u.StartDraft(ctx, phone, product))
	require.NoError(t, u.SetQuantity(ctx, phone, decimal.NewFromInt(8)))

	_, err := u.Confirm(ctx, phone, entity.ClientData{})
	require.NoError(t, err)
	assert.True(t, catalogRepo.updatedStock.IsZero())
}

func TestCancelClearsDraft(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessionRepo()
	u := NewOrderUseCase(sessions, &fakeOrderRepo{}, &fakeCatalogRepo{}, newFakeOrderStore(), zap.NewNop())

	phone := "+51999888777"
	require.NoError(t, u.StartDraft(ctx, phone, sampleProduct()))
	require.NoError(t, u.Cancel(ctx, phone))

	session, _ := sessions.Get(ctx, phone)
	assert.False(t, session.HasDraft())
}

func TestActiveOrdersDegradesToEmpty(t *testing.T) {
	u := NewOrderUseCase(newFakeSessionRepo(), &fakeOrderRepo{listErr: errSheetDown}, &fakeCatalogRepo{}, newFakeOrderStore(), zap.NewNop())

	orders := u.ActiveOrders(context.Background(), "+51999888777")
	require.NotNil(t, orders)
	assert.Empty(t, orders)
}
