package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/yab-g4u/Ablack/internal/cart"
)

// Totals are the derived order amounts shown in the summary panel.
// Decimal arithmetic keeps them exact; formatting is two fraction digits.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, flat shipping, and total from the cart
// items handed off at checkout.
func ComputeTotals(items []cart.Item, shippingFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Total:    subtotal.Add(shippingFee),
	}
}

// Display returns the two-fraction-digit strings for the summary panel.
func (t Totals) Display() map[string]string {
	return map[string]string{
		"subtotal": t.Subtotal.StringFixed(2),
		"shipping": t.Shipping.StringFixed(2),
		"total":    t.Total.StringFixed(2),
	}
}
