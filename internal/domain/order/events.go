package order

import "time"

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDeleted       = "OrderDeleted"
)

// Event is the envelope published for every order change.
type Event struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderPlaced struct {
	OrderID        string         `json:"order_id"`
	OrderNumber    string         `json:"order_number"`
	CustomerName   string         `json:"customer_name"`
	Phone          string         `json:"phone"`
	WilayaID       *int           `json:"wilaya_id"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	ShippingCost   int            `json:"shipping_cost"`
	Items          []LineItem     `json:"items"`
	TotalAmount    int            `json:"total_amount"`
	PlacedAt       time.Time      `json:"placed_at"`
}

type OrderStatusChanged struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        Status    `json:"from"`
	To          Status    `json:"to"`
	ChangedAt   time.Time `json:"changed_at"`
}

type OrderDeleted struct {
	OrderID   string    `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// NewOrderPlaced builds the event payload for a freshly inserted order.
func NewOrderPlaced(o *Order) OrderPlaced {
	return OrderPlaced{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.CustomerName,
		Phone:          o.Phone,
		WilayaID:       o.WilayaID,
		DeliveryMethod: o.DeliveryMethod,
		ShippingCost:   o.ShippingCost,
		Items:          o.Items,
		TotalAmount:    o.TotalAmount,
		PlacedAt:       o.CreatedAt,
	}
}
