package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yab-g4u/Ablack/internal/cart"
)

func TestComputeTotals(t *testing.T) {
	items := []cart.Item{
		{ID: "p1", Price: decimal.RequireFromString("249.00"), Quantity: 1},
		{ID: "p2", Price: decimal.RequireFromString("189.00"), Quantity: 1},
	}
	totals := ComputeTotals(items, decimal.RequireFromString("15.00"))

	assert.Equal(t, "438.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.00", totals.Shipping.StringFixed(2))
	assert.Equal(t, "453.00", totals.Total.StringFixed(2))
}

func TestComputeTotalsMultipliesQuantity(t *testing.T) {
	items := []cart.Item{
		{ID: "p1", Price: decimal.RequireFromString("19.99"), Quantity: 3},
	}
	totals := ComputeTotals(items, decimal.RequireFromString("15.00"))

	assert.Equal(t, "59.97", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "74.97", totals.Total.StringFixed(2))
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, decimal.RequireFromString("15.00"))

	assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.00", totals.Total.StringFixed(2))
}

func TestDisplayFormatsTwoFractionDigits(t *testing.T) {
	items := []cart.Item{
		{ID: "p1", Price: decimal.RequireFromString("0.1"), Quantity: 3},
	}
	display := ComputeTotals(items, decimal.RequireFromString("15")).Display()

	assert.Equal(t, "0.30", display["subtotal"])
	assert.Equal(t, "15.00", display["shipping"])
	assert.Equal(t, "15.30", display["total"])
}
