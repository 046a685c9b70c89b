package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/cart"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
)

// Request carries what the customer typed on the checkout form.
type Request struct {
	CustomerName   string               `json:"customer_name"`
	Phone          string               `json:"phone"`
	WilayaID       int                  `json:"wilaya_id"`
	DeliveryMethod order.DeliveryMethod `json:"delivery_method"`
}

// Quote is the price breakdown shown before the order is placed.
type Quote struct {
	TotalItems   int                  `json:"total_items"`
	Subtotal     int                  `json:"subtotal"`
	ShippingCost int                  `json:"shipping_cost"`
	Total        int                  `json:"total"`
	Method       order.DeliveryMethod `json:"delivery_method"`
	Wilaya       *wilaya.Wilaya       `json:"wilaya,omitempty"`
}

type Service struct {
	wilayas wilaya.Repository
	orders  order.Repository
	events  *order.Service
	numbers *NumberGenerator
}

func NewService(wilayas wilaya.Repository, orders order.Repository, events *order.Service, numbers *NumberGenerator) *Service {
	return &Service{wilayas: wilayas, orders: orders, events: events, numbers: numbers}
}

// Quote prices the cart. A zero wilayaID quotes without shipping.
func (s *Service) Quote(ctx context.Context, c *cart.Store, wilayaID int, method order.DeliveryMethod) (*Quote, error) {
	if method == "" {
		method = order.DeliveryBureau
	}
	if !method.Valid() {
		return nil, apperr.Validation("delivery_method", "unknown delivery method "+string(method))
	}

	var region *wilaya.Wilaya
	if wilayaID > 0 {
		w, err := s.region(ctx, wilayaID)
		if err != nil {
			return nil, err
		}
		region = w
	}

	subtotal := c.TotalPrice()
	shipping := ShippingCost(region, method)
	return &Quote{
		TotalItems:   c.TotalItems(),
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        GrandTotal(subtotal, shipping),
		Method:       method,
		Wilaya:       region,
	}, nil
}

// PlaceOrder inserts an order for the cart contents. The cart is cleared
// only after the insert is confirmed; on failure it is left untouched so the
// customer can resubmit.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Store, req Request) (*order.Order, error) {
	// Reject locally before any remote call.
	if err := validateCustomer(req.CustomerName, req.Phone, req.WilayaID > 0, req.DeliveryMethod); err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, apperr.Validation("items", order.ErrEmptyOrder.Error())
	}

	region, err := s.region(ctx, req.WilayaID)
	if err != nil {
		return nil, err
	}

	shipping := ShippingCost(region, req.DeliveryMethod)
	payload, err := BuildOrderPayload(
		s.numbers,
		req.CustomerName,
		req.Phone,
		region,
		req.DeliveryMethod,
		items,
		GrandTotal(c.TotalPrice(), shipping),
	)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Insert(ctx, payload)
	if err != nil {
		log.Printf("[Checkout] Failed to insert order %s: %v", payload.OrderNumber, err)
		return nil, apperr.Remote("insert order", err)
	}

	c.Clear(ctx)
	log.Printf("[Checkout] Order %s placed: %d items, total %d DA", created.OrderNumber, len(created.Items), created.TotalAmount)

	if s.events != nil {
		s.events.Published(ctx, created)
	}
	return created, nil
}

// region fetches a deliverable region; unknown or inactive ids are a
// customer input problem rather than a remote failure.
func (s *Service) region(ctx context.Context, id int) (*wilaya.Wilaya, error) {
	w, err := s.wilayas.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Validation("wilaya_id", "unknown wilaya")
	}
	if err != nil {
		return nil, apperr.Remote("get wilaya", err)
	}
	if !w.IsActive {
		return nil, apperr.Validation("wilaya_id", "delivery is not available in "+w.Name)
	}
	return w, nil
}
