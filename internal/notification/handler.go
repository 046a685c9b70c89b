package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/example/luxa-shop/internal/email"
)

// Mailer sends the new order email
type Mailer interface {
	SendNewOrder(to string, summary email.OrderSummary) error
}

// envelope mirrors order.Event with the payload left undecoded
type envelope struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	OrderID   string          `json:"order_id"`
	Data      json.RawMessage `json:"data"`
}

// Handler processes order events for sending notifications
type Handler struct {
	mailer  Mailer
	wilayas wilaya.Repository
	to      string
}

// NewHandler creates a handler that mails every new order to the shop
// owner at to. wilayas may be nil, in which case the region id is shown.
func NewHandler(mailer Mailer, wilayas wilaya.Repository, to string) *Handler {
	return &Handler{mailer: mailer, wilayas: wilayas, to: to}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event envelope
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	// Only process OrderPlaced events
	if event.EventType == order.EventOrderPlaced {
		return h.handleOrderPlaced(ctx, event)
	}
	return nil
}

func (h *Handler) handleOrderPlaced(ctx context.Context, event envelope) error {
	var e order.OrderPlaced
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s", e.OrderNumber)

	items := make([]email.OrderItem, len(e.Items))
	for i, li := range e.Items {
		items[i] = email.OrderItem{
			Name:     li.Name,
			Variant:  li.Variant,
			Quantity: li.Quantity,
			Price:    li.Price,
		}
	}

	summary := email.OrderSummary{
		OrderNumber:    e.OrderNumber,
		CustomerName:   e.CustomerName,
		Phone:          e.Phone,
		Wilaya:         h.regionName(ctx, e.WilayaID),
		DeliveryMethod: e.DeliveryMethod.Label(),
		ShippingCost:   e.ShippingCost,
		TotalAmount:    e.TotalAmount,
		PlacedAt:       e.PlacedAt,
		Items:          items,
	}

	if err := h.mailer.SendNewOrder(h.to, summary); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", h.to, err)
		return err
	}

	log.Printf("[Notifier] New order email sent to %s for order %s", h.to, e.OrderNumber)
	return nil
}

// regionName resolves the wilaya display name, falling back to its code
// number when the lookup fails.
func (h *Handler) regionName(ctx context.Context, id *int) string {
	if id == nil {
		return ""
	}
	if h.wilayas != nil {
		w, err := h.wilayas.Get(ctx, *id)
		if err == nil {
			return w.Code + " - " + w.Name
		}
		log.Printf("[Notifier] Error getting wilaya %d: %v", *id, err)
	}
	return fmt.Sprintf("%d", *id)
}
