package domain

import (
	"context"
	"time"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"imageUrl"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	// DecrementStock atomically reduces stock_quantity, failing if the
	// remaining stock is insufficient.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// PlaceholderProducts is the static catalog served when the backend is
// unreachable, so the shop page still renders something.
var PlaceholderProducts = []Product{
	{ID: "placeholder-1", Name: "Denim Jacket", Category: "jackets", Description: "Premium denim jacket with custom back patch.", Price: 249.00, StockQuantity: 10},
	{ID: "placeholder-2", Name: "Denim Trousers", Category: "pants", Description: "Wide-leg denim trousers with signature stitching.", Price: 189.00, StockQuantity: 10},
	{ID: "placeholder-3", Name: "Full Denim Set", Category: "sets", Description: "Complete denim outfit for the ultimate statement.", Price: 399.00, StockQuantity: 10},
	{ID: "placeholder-4", Name: "Signature Jacket", Category: "jackets", Description: "Our iconic jacket with embroidered details.", Price: 279.00, StockQuantity: 10},
	{ID: "placeholder-5", Name: "Classic Denim Set", Category: "sets", Description: "Timeless denim combination for everyday style.", Price: 429.00, StockQuantity: 10},
	{ID: "placeholder-6", Name: "Designer Pants", Category: "pants", Description: "Premium denim pants with distinctive stitching.", Price: 219.00, StockQuantity: 10},
}

// PlaceholderProduct stands in for a product that cannot be found, so a
// detail view degrades instead of failing hard.
func PlaceholderProduct(id string) *Product {
	return &Product{
		ID:            id,
		Name:          "Product Not Found",
		Description:   "This product is currently unavailable.",
		Category:      "all",
		Price:         0,
		StockQuantity: 0,
	}
}
