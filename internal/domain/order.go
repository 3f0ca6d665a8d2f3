package domain

import (
	"context"
	"time"
)

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	OrderNumber     string      `json:"orderNumber"` // AB-xxxxx, shown on the confirmation page
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingFee     float64     `json:"shippingFee"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentDetails  JSONB       `json:"paymentDetails"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at time of purchase
	Size      string  `json:"size,omitempty"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	CreateOrderItems(ctx context.Context, orderID string, items []OrderItem) error
	GetByID(ctx context.Context, id, userID string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]OrderItem, error)
	UpdateStatus(ctx context.Context, id, userID, status string) error
}
