package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/example/luxa-shop/internal/email"
	"github.com/example/luxa-shop/internal/infrastructure/store/mocks"
	"github.com/example/luxa-shop/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	to        []string
	summaries []email.OrderSummary
	err       error
}

func (m *mockMailer) SendNewOrder(to string, s email.OrderSummary) error {
	m.to = append(m.to, to)
	m.summaries = append(m.summaries, s)
	return m.err
}

func placedEvent(t *testing.T, wilayaID *int) []byte {
	t.Helper()
	o := &order.Order{
		ID:             "o1",
		OrderNumber:    "LUX-1772359200000",
		CustomerName:   "Amina",
		Phone:          "0555123456",
		WilayaID:       wilayaID,
		DeliveryMethod: order.DeliveryDomicile,
		ShippingCost:   650,
		Items:          []order.LineItem{{ProductID: "p1", Name: "Gloss", Price: 900, Quantity: 2, Variant: "Rose"}},
		TotalAmount:    2450,
		Status:         order.StatusPending,
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(order.Event{
		ID:        "e1",
		EventType: order.EventOrderPlaced,
		OrderID:   o.ID,
		Data:      order.NewOrderPlaced(o),
		Timestamp: o.CreatedAt,
	})
	require.NoError(t, err)
	return b
}

func TestHandler_OrderPlaced(t *testing.T) {
	mailer := &mockMailer{}
	wilayas := mocks.NewMockWilayaRepository(&wilaya.Wilaya{ID: 16, Code: "16", Name: "Alger", IsActive: true})
	h := notification.NewHandler(mailer, wilayas, "owner@luxa.dz")
	region := 16

	require.NoError(t, h.HandleEvent(context.Background(), []byte("o1"), placedEvent(t, &region)))

	require.Len(t, mailer.summaries, 1)
	assert.Equal(t, []string{"owner@luxa.dz"}, mailer.to)
	s := mailer.summaries[0]
	assert.Equal(t, "LUX-1772359200000", s.OrderNumber)
	assert.Equal(t, "16 - Alger", s.Wilaya)
	assert.Equal(t, "Domicile", s.DeliveryMethod)
	assert.Equal(t, 2450, s.TotalAmount)
	assert.Equal(t, []email.OrderItem{{Name: "Gloss", Variant: "Rose", Quantity: 2, Price: 900}}, s.Items)
}

func TestHandler_RegionFallbacks(t *testing.T) {
	mailer := &mockMailer{}
	wilayas := mocks.NewMockWilayaRepository()
	wilayas.Err = errors.New("db down")
	h := notification.NewHandler(mailer, wilayas, "owner@luxa.dz")
	region := 31

	require.NoError(t, h.HandleEvent(context.Background(), nil, placedEvent(t, &region)))
	require.NoError(t, h.HandleEvent(context.Background(), nil, placedEvent(t, nil)))

	assert.Equal(t, "31", mailer.summaries[0].Wilaya)
	assert.Equal(t, "", mailer.summaries[1].Wilaya)
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	mailer := &mockMailer{}
	h := notification.NewHandler(mailer, nil, "owner@luxa.dz")
	b, _ := json.Marshal(order.Event{EventType: order.EventOrderStatusChanged, Data: order.OrderStatusChanged{}})

	require.NoError(t, h.HandleEvent(context.Background(), nil, b))
	assert.Empty(t, mailer.summaries)
}

func TestHandler_Errors(t *testing.T) {
	h := notification.NewHandler(&mockMailer{}, nil, "owner@luxa.dz")
	assert.Error(t, h.HandleEvent(context.Background(), nil, []byte("not json")))

	failing := notification.NewHandler(&mockMailer{err: errors.New("smtp 421")}, nil, "owner@luxa.dz")
	assert.Error(t, failing.HandleEvent(context.Background(), nil, placedEvent(t, nil)))
}
