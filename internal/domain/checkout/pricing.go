// Package checkout prices a cart for a delivery region and turns it into an
// order.
package checkout

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
)

// DefaultOrderPrefix starts every order number.
const DefaultOrderPrefix = "LUX"

// ShippingCost returns the flat rate of the region for the delivery method,
// or 0 when no region is selected.
func ShippingCost(w *wilaya.Wilaya, method order.DeliveryMethod) int {
	if w == nil {
		return 0
	}
	switch method {
	case order.DeliveryBureau:
		return w.ShippingBureau
	case order.DeliveryDomicile:
		return w.ShippingDomicile
	}
	return 0
}

func GrandTotal(cartTotalPrice, shippingCost int) int {
	return cartTotalPrice + shippingCost
}

// NumberGenerator hands out order numbers of the form PREFIX-<unix millis>.
// Numbers are strictly increasing within a process even when the clock
// stalls or steps back.
type NumberGenerator struct {
	mu     sync.Mutex
	prefix string
	now    func() time.Time
	last   int64
}

func NewNumberGenerator(prefix string, now func() time.Time) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultOrderPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &NumberGenerator{prefix: prefix, now: now}
}

func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return fmt.Sprintf("%s-%d", g.prefix, n)
}

// BuildOrderPayload validates the customer details and snapshots the cart
// lines into a new pending order. Nothing is sent anywhere.
func BuildOrderPayload(
	numbers *NumberGenerator,
	customerName, phone string,
	region *wilaya.Wilaya,
	method order.DeliveryMethod,
	items []cart.Item,
	grandTotal int,
) (*order.Order, error) {
	customerName = strings.TrimSpace(customerName)
	phone = strings.TrimSpace(phone)
	if err := validateCustomer(customerName, phone, region != nil, method); err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, len(items))
	for i, it := range items {
		lines[i] = it.LineItem()
	}

	regionID := region.ID
	o := &order.Order{
		OrderNumber:    numbers.Next(),
		CustomerName:   customerName,
		Phone:          phone,
		WilayaID:       &regionID,
		DeliveryMethod: method,
		ShippingCost:   ShippingCost(region, method),
		Items:          lines,
		TotalAmount:    grandTotal,
		Status:         order.StatusPending,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func validateCustomer(customerName, phone string, hasRegion bool, method order.DeliveryMethod) error {
	if strings.TrimSpace(customerName) == "" {
		return apperr.Validation("customer_name", "is required")
	}
	if strings.TrimSpace(phone) == "" {
		return apperr.Validation("phone", "is required")
	}
	if !hasRegion {
		return apperr.Validation("wilaya_id", "is required")
	}
	if !method.Valid() {
		return apperr.Validation("delivery_method", fmt.Sprintf("unknown delivery method %q", method))
	}
	return nil
}
