package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/example/luxa-shop/internal/domain/checkout"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/example/luxa-shop/internal/infrastructure/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service   *checkout.Service
	cart      *cart.Store
	storage   *cart.MemoryStorage
	wilayas   *mocks.MockWilayaRepository
	orders    *mocks.MockOrderRepository
	publisher *mocks.MockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	wilayas := mocks.NewMockWilayaRepository(
		&wilaya.Wilaya{ID: 16, Code: "16", Name: "Alger", ShippingBureau: 400, ShippingDomicile: 650, IsActive: true},
		&wilaya.Wilaya{ID: 11, Code: "11", Name: "Tamanrasset", ShippingBureau: 900, ShippingDomicile: 1400, IsActive: false},
	)
	orders := mocks.NewMockOrderRepository()
	publisher := mocks.NewMockPublisher()
	orderSvc := order.NewService(orders, publisher)
	numbers := checkout.NewNumberGenerator("LUX", nil)

	storage := cart.NewMemoryStorage()
	c := cart.Open(ctx, storage, cart.StorageKey("s1"))
	_, err := c.AddItem(ctx, catalog.Product{ID: "prod-a", Name: "Rouge Velours", Price: 1200}, 2, "")
	require.NoError(t, err)
	_, err = c.AddItem(ctx, catalog.Product{ID: "prod-b", Name: "Mascara", Price: 800}, 1, "")
	require.NoError(t, err)

	return &fixture{
		service:   checkout.NewService(wilayas, orders, orderSvc, numbers),
		cart:      c,
		storage:   storage,
		wilayas:   wilayas,
		orders:    orders,
		publisher: publisher,
	}
}

func validRequest() checkout.Request {
	return checkout.Request{
		CustomerName:   "Amina",
		Phone:          "0555123456",
		WilayaID:       16,
		DeliveryMethod: order.DeliveryBureau,
	}
}

// ============================================
// Quote Tests
// ============================================

func TestService_Quote_Scenario(t *testing.T) {
	f := newFixture(t)

	q, err := f.service.Quote(context.Background(), f.cart, 16, order.DeliveryBureau)

	require.NoError(t, err)
	assert.Equal(t, 3, q.TotalItems)
	assert.Equal(t, 3200, q.Subtotal)
	assert.Equal(t, 400, q.ShippingCost)
	assert.Equal(t, 3600, q.Total)
}

func TestService_Quote_NoRegion(t *testing.T) {
	f := newFixture(t)

	q, err := f.service.Quote(context.Background(), f.cart, 0, order.DeliveryDomicile)

	require.NoError(t, err)
	assert.Zero(t, q.ShippingCost)
	assert.Equal(t, 3200, q.Total)
	assert.Empty(t, f.wilayas.GetCalls)
}

func TestService_Quote_UnknownRegion(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Quote(context.Background(), f.cart, 99, order.DeliveryBureau)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// ============================================
// PlaceOrder Tests
// ============================================

func TestService_PlaceOrder_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.service.PlaceOrder(ctx, f.cart, validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Regexp(t, `^LUX-\d+$`, o.OrderNumber)
	assert.Equal(t, 400, o.ShippingCost)
	assert.Equal(t, 3600, o.TotalAmount)
	assert.Len(t, o.Items, 2)

	// Cart cleared and persisted empty
	assert.True(t, f.cart.IsEmpty())
	reopened := cart.Open(ctx, f.storage, cart.StorageKey("s1"))
	assert.True(t, reopened.IsEmpty())

	// Event published
	require.Len(t, f.publisher.Events, 1)
	event := f.publisher.Events[0].Event.(order.Event)
	assert.Equal(t, order.EventOrderPlaced, event.EventType)
	assert.Equal(t, o.ID, event.OrderID)
}

func TestService_PlaceOrder_Domicile(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.DeliveryMethod = order.DeliveryDomicile

	o, err := f.service.PlaceOrder(context.Background(), f.cart, req)

	require.NoError(t, err)
	assert.Equal(t, 650, o.ShippingCost)
	assert.Equal(t, 3850, o.TotalAmount)
}

func TestService_PlaceOrder_ValidationIssuesNoRemoteCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*checkout.Request)
	}{
		{"empty customer name", func(r *checkout.Request) { r.CustomerName = "" }},
		{"empty phone", func(r *checkout.Request) { r.Phone = "" }},
		{"no region", func(r *checkout.Request) { r.WilayaID = 0 }},
		{"bad method", func(r *checkout.Request) { r.DeliveryMethod = "pigeon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(&req)

			o, err := f.service.PlaceOrder(context.Background(), f.cart, req)

			assert.Nil(t, o)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Empty(t, f.wilayas.GetCalls)
			assert.Empty(t, f.orders.InsertCalls)
			assert.Equal(t, 3, f.cart.TotalItems())
		})
	}
}

func TestService_PlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.cart.Clear(context.Background())

	_, err := f.service.PlaceOrder(context.Background(), f.cart, validRequest())

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, f.orders.InsertCalls)
}

func TestService_PlaceOrder_InactiveRegion(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.WilayaID = 11

	_, err := f.service.PlaceOrder(context.Background(), f.cart, req)

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, f.orders.InsertCalls)
}

func TestService_PlaceOrder_InsertFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.orders.InsertErr = errors.New("connection reset by peer")

	o, err := f.service.PlaceOrder(context.Background(), f.cart, validRequest())

	assert.Nil(t, o)
	assert.ErrorIs(t, err, apperr.ErrRemote)
	assert.True(t, apperr.IsRetryable(err))
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Equal(t, 3, f.cart.TotalItems())
	assert.Empty(t, f.publisher.Events)

	// Resubmitting after the outage succeeds.
	f.orders.InsertErr = nil
	o, err = f.service.PlaceOrder(context.Background(), f.cart, validRequest())
	require.NoError(t, err)
	assert.NotNil(t, o)
	assert.True(t, f.cart.IsEmpty())
}

func TestService_PlaceOrder_RegionFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.wilayas.Err = errors.New("timeout")

	_, err := f.service.PlaceOrder(context.Background(), f.cart, validRequest())

	assert.ErrorIs(t, err, apperr.ErrRemote)
	assert.Empty(t, f.orders.InsertCalls)
	assert.False(t, f.cart.IsEmpty())
}

func TestService_PlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	f.publisher.Err = errors.New("broker unavailable")

	o, err := f.service.PlaceOrder(context.Background(), f.cart, validRequest())

	require.NoError(t, err)
	assert.NotNil(t, o)
	assert.True(t, f.cart.IsEmpty())
}

func TestService_PlaceOrder_ConsecutiveOrdersHaveDistinctNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	numbers := map[string]bool{}

	for i := 0; i < 5; i++ {
		_, err := f.cart.AddItem(ctx, catalog.Product{ID: "prod-a", Name: "Rouge", Price: 1200}, 1, "")
		require.NoError(t, err)
		o, err := f.service.PlaceOrder(ctx, f.cart, validRequest())
		require.NoError(t, err)
		assert.False(t, numbers[o.OrderNumber])
		numbers[o.OrderNumber] = true
	}
}
