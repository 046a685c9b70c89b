package email

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// OrderSummary is what the shop owner needs to prepare a shipment
type OrderSummary struct {
	OrderNumber    string
	CustomerName   string
	Phone          string
	Wilaya         string
	DeliveryMethod string
	ShippingCost   int
	TotalAmount    int
	PlacedAt       time.Time
	Items          []OrderItem
}

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	Name     string
	Variant  string
	Quantity int
	Price    int
}

// BuildNewOrderBody builds the HTML body of the new order email
func BuildNewOrderBody(s OrderSummary) string {
	var itemsHTML strings.Builder
	for _, item := range s.Items {
		name := html.EscapeString(item.Name)
		if item.Variant != "" {
			name += fmt.Sprintf(` <span style="color: #999;">(%s)</span>`, html.EscapeString(item.Variant))
		}
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 10px; border-bottom: 1px solid #f0e6ea;">%s</td>
				<td style="padding: 10px; border-bottom: 1px solid #f0e6ea; text-align: center;">%d</td>
				<td style="padding: 10px; border-bottom: 1px solid #f0e6ea; text-align: right;">%s DA</td>
			</tr>`,
			name,
			item.Quantity,
			formatAmount(item.Price*item.Quantity),
		))
	}

	wilaya := s.Wilaya
	if wilaya == "" {
		wilaya = "-"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: Georgia, 'Times New Roman', serif; line-height: 1.6; color: #2b2b2b; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1a1a1a; padding: 24px; border-radius: 8px 8px 0 0;">
		<h1 style="color: #d4af37; margin: 0; font-size: 22px; letter-spacing: 2px;">LUXA</h1>
		<p style="color: #fff; margin: 4px 0 0 0;">Nouvelle commande %s</p>
	</div>

	<div style="background: #fff; padding: 24px; border: 1px solid #eee; border-top: none; border-radius: 0 0 8px 8px;">
		<table style="width: 100%%; font-size: 14px;">
			<tr><td style="color: #888;">Client</td><td>%s</td></tr>
			<tr><td style="color: #888;">Téléphone</td><td>%s</td></tr>
			<tr><td style="color: #888;">Wilaya</td><td>%s</td></tr>
			<tr><td style="color: #888;">Livraison</td><td>%s</td></tr>
			<tr><td style="color: #888;">Date</td><td>%s</td></tr>
		</table>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #faf5f7;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: center;">Qté</th>
					<th style="padding: 10px; text-align: right;">Sous-total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<p style="text-align: right; margin: 0;">Frais de livraison : %s DA</p>
		<p style="text-align: right; font-size: 20px; font-weight: bold; color: #b8860b;">Total : %s DA</p>
	</div>
</body>
</html>`,
		html.EscapeString(s.OrderNumber),
		html.EscapeString(s.CustomerName),
		html.EscapeString(s.Phone),
		html.EscapeString(wilaya),
		html.EscapeString(s.DeliveryMethod),
		s.PlacedAt.Format("02/01/2006 15:04"),
		itemsHTML.String(),
		formatAmount(s.ShippingCost),
		formatAmount(s.TotalAmount),
	)
}

// formatAmount groups thousands with a space, as prices are shown in the
// shop: 12500 -> "12 500".
func formatAmount(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
	}
	for i := remainder; i < len(str); i += 3 {
		if result.Len() > len(sign) {
			result.WriteString(" ")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}
