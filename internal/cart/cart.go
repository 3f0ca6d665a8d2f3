package cart

import (
	"github.com/shopspring/decimal"
)

// Item is a cart line item. Price is the unit price.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Size     string          `json:"size,omitempty"`
}

// Cart is the mutable line-item list. Quantities are always >= 1.
type Cart struct {
	items []Item
}

func New(items ...Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add appends item, merging quantity into an existing line with the same
// product id and size. A non-positive quantity is treated as 1.
func (c *Cart) Add(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ID == item.ID && c.items[i].Size == item.Size {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of the line with the given id.
// Values below 1 leave the quantity unchanged.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given id. Unknown ids are a no-op.
func (c *Cart) Remove(id string) {
	filtered := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
}

// Subtotal is the exact sum of unit price times quantity.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the total quantity across lines (the cart badge number).
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Items returns a copy of the line items.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}
