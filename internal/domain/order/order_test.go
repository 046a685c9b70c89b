package order

import (
	"testing"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() *Order {
	region := 16
	return &Order{
		OrderNumber:    "LUX-1700000000000",
		CustomerName:   "Amina",
		Phone:          "0555123456",
		WilayaID:       &region,
		DeliveryMethod: DeliveryBureau,
		ShippingCost:   400,
		Items: []LineItem{
			{ProductID: "prod-a", Name: "Rouge Velours", Price: 1200, Quantity: 2},
			{ProductID: "prod-b", Name: "Mascara", Price: 800, Quantity: 1, Variant: "Noir"},
		},
		TotalAmount: 3600,
		Status:      StatusPending,
	}
}

func TestStatus_Labels(t *testing.T) {
	assert.Equal(t, "En attente", StatusPending.Label())
	assert.Equal(t, "Livrée", StatusDelivered.Label())
	assert.Equal(t, "inconnu", Status("inconnu").Label())
	assert.False(t, Status("inconnu").Valid())
	assert.Len(t, Statuses, 5)
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
}

func TestDeliveryMethod(t *testing.T) {
	assert.True(t, DeliveryBureau.Valid())
	assert.True(t, DeliveryDomicile.Valid())
	assert.False(t, DeliveryMethod("").Valid())
	assert.Equal(t, "Bureau", DeliveryBureau.Label())
	assert.Equal(t, "Domicile", DeliveryDomicile.Label())
}

func TestLineItem_Describe(t *testing.T) {
	assert.Equal(t, "2x Rouge Velours", LineItem{Name: "Rouge Velours", Quantity: 2}.Describe())
	assert.Equal(t, "1x Mascara (Noir)", LineItem{Name: "Mascara", Quantity: 1, Variant: "Noir"}.Describe())
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
		field  string
	}{
		{"valid", func(*Order) {}, ""},
		{"missing number", func(o *Order) { o.OrderNumber = "" }, "order_number"},
		{"blank name", func(o *Order) { o.CustomerName = "  " }, "customer_name"},
		{"missing phone", func(o *Order) { o.Phone = "" }, "phone"},
		{"bad method", func(o *Order) { o.DeliveryMethod = "poste" }, "delivery_method"},
		{"negative shipping", func(o *Order) { o.ShippingCost = -1 }, "shipping_cost"},
		{"no items", func(o *Order) { o.Items = nil }, "items"},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }, "items.quantity"},
		{"missing product id", func(o *Order) { o.Items[1].ProductID = "" }, "items.productId"},
		{"bad status", func(o *Order) { o.Status = "perdue" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(o)

			err := o.Validate()

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperr.ErrValidation)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestOrder_ValidateEmptyWrapsSentinel(t *testing.T) {
	o := validOrder()
	o.Items = []LineItem{}

	assert.ErrorIs(t, o.Validate(), ErrEmptyOrder)
}

func TestOrder_ItemsTotal(t *testing.T) {
	assert.Equal(t, 3200, validOrder().ItemsTotal())
}
