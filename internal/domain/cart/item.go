package cart

import (
	"fmt"

	"github.com/example/luxa-shop/internal/domain/catalog"
	"github.com/example/luxa-shop/internal/domain/order"
)

const defaultVariant = "default"

// Item is one cart line. Product is a snapshot taken when the line was
// added; later catalog edits do not reach existing carts.
type Item struct {
	ID       string          `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant,omitempty"`
}

func (i Item) Subtotal() int { return i.Product.Price * i.Quantity }

func (i Item) matches(productID, variant string) bool {
	return i.Product.ID == productID && i.Variant == variant
}

// LineItem flattens the cart line into the snapshot stored with an order.
func (i Item) LineItem() order.LineItem {
	return order.LineItem{
		ProductID: i.Product.ID,
		Name:      i.Product.Name,
		Price:     i.Product.Price,
		Quantity:  i.Quantity,
		Variant:   i.Variant,
	}
}

func itemID(productID, variant string, millis int64) string {
	if variant == "" {
		variant = defaultVariant
	}
	return fmt.Sprintf("%s-%s-%d", productID, variant, millis)
}
