package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "en_attente"
	StatusConfirmed Status = "confirmee"
	StatusShipped   Status = "expediee"
	StatusDelivered Status = "livree"
	StatusCancelled Status = "annulee"
)

// Statuses lists the lifecycle in order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

var statusLabels = map[Status]string{
	StatusPending:   "En attente",
	StatusConfirmed: "Confirmée",
	StatusShipped:   "Expédiée",
	StatusDelivered: "Livrée",
	StatusCancelled: "Annulée",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type DeliveryMethod string

const (
	DeliveryBureau   DeliveryMethod = "bureau"
	DeliveryDomicile DeliveryMethod = "domicile"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryBureau || m == DeliveryDomicile
}

func (m DeliveryMethod) Label() string {
	if m == DeliveryBureau {
		return "Bureau"
	}
	return "Domicile"
}

var ErrEmptyOrder = errors.New("order must have at least one item")

// LineItem is the immutable snapshot of one cart line stored with an order.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

func (li LineItem) Subtotal() int { return li.Price * li.Quantity }

// Validate checks a line item at the boundary where orders are built.
func (li LineItem) Validate() error {
	switch {
	case li.ProductID == "":
		return apperr.Validation("items.productId", "is required")
	case strings.TrimSpace(li.Name) == "":
		return apperr.Validation("items.name", "is required")
	case li.Price < 0:
		return apperr.Validation("items.price", "must not be negative")
	case li.Quantity < 1:
		return apperr.Validation("items.quantity", "must be at least 1")
	}
	return nil
}

// Describe renders the line as "2x Name (variant)".
func (li LineItem) Describe() string {
	s := fmt.Sprintf("%dx %s", li.Quantity, li.Name)
	if li.Variant != "" {
		s += " (" + li.Variant + ")"
	}
	return s
}

type Order struct {
	ID             string         `json:"id"`
	OrderNumber    string         `json:"order_number"`
	CustomerName   string         `json:"customer_name"`
	Phone          string         `json:"phone"`
	WilayaID       *int           `json:"wilaya_id"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	ShippingCost   int            `json:"shipping_cost"`
	Items          []LineItem     `json:"items"`
	TotalAmount    int            `json:"total_amount"`
	Status         Status         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Validate checks everything the checkout is responsible for.
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return apperr.Validation("order_number", "is required")
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return apperr.Validation("customer_name", "is required")
	}
	if strings.TrimSpace(o.Phone) == "" {
		return apperr.Validation("phone", "is required")
	}
	if !o.DeliveryMethod.Valid() {
		return apperr.Validation("delivery_method", fmt.Sprintf("unknown delivery method %q", o.DeliveryMethod))
	}
	if o.ShippingCost < 0 {
		return apperr.Validation("shipping_cost", "must not be negative")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: %w", apperr.Validation("items", ErrEmptyOrder.Error()), ErrEmptyOrder)
	}
	for _, li := range o.Items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	if !o.Status.Valid() {
		return apperr.Validation("status", fmt.Sprintf("unknown status %q", o.Status))
	}
	return nil
}

// ItemsTotal sums the line items without shipping.
func (o *Order) ItemsTotal() int {
	var total int
	for _, li := range o.Items {
		total += li.Subtotal()
	}
	return total
}
