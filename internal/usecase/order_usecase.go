package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yab-g4u/Ablack/internal/cart"
	"github.com/yab-g4u/Ablack/internal/checkout"
	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/pkg/logger"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrCannotCancel    = errors.New("order can no longer be cancelled")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidShipping = errors.New("shipping details are incomplete")
	ErrInvalidPayment  = errors.New("payment details are incomplete")
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	txManager   domain.TransactionManager
	shippingFee decimal.Decimal
}

func NewOrderUsecase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, txManager domain.TransactionManager, shippingFee decimal.Decimal) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		shippingFee: shippingFee,
	}
}

// PlaceOrder persists the order, its items, and the stock decrements as
// one transaction. Totals are recomputed server-side; nothing from the
// summary panel is trusted.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, items []cart.Item, shipping checkout.ShippingForm, payment checkout.PaymentForm) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if errs := shipping.Validate(); !errs.Valid() {
		return nil, ErrInvalidShipping
	}
	if errs := payment.Validate(); !errs.Valid() {
		return nil, ErrInvalidPayment
	}

	totals := checkout.ComputeTotals(items, u.shippingFee)
	total, _ := totals.Total.Float64()
	fee, _ := totals.Shipping.Float64()

	order := &domain.Order{
		UserID:          userID,
		OrderNumber:     NewOrderNumber(),
		Status:          domain.OrderStatusPending,
		TotalAmount:     total,
		ShippingFee:     fee,
		ShippingAddress: formatShippingAddress(shipping),
		PaymentMethod:   payment.Method,
		PaymentDetails:  payment.Details(),
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		price, _ := item.Price.Float64()
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     price,
			Size:      item.Size,
		})
	}

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.orderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := u.orderRepo.CreateOrderItems(ctx, order.ID, orderItems); err != nil {
			return err
		}
		for _, item := range orderItems {
			if err := u.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("order placement failed")
		return nil, err
	}

	order.Items = orderItems
	logger.Info().
		Str("order_number", order.OrderNumber).
		Str("user_id", userID).
		Float64("total", order.TotalAmount).
		Msg("order placed")
	return order, nil
}

// GetMyOrders lists the user's orders, newest first, with their items.
func (u *OrderUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := u.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := u.orderRepo.GetOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, id, userID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := u.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// CancelOrder moves a pending or processing order to cancelled. Shipped
// and later orders stay put.
func (u *OrderUsecase) CancelOrder(ctx context.Context, id, userID string) error {
	order, err := u.orderRepo.GetByID(ctx, id, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusProcessing {
		return ErrCannotCancel
	}
	if !domain.ValidStatusTransition(order.Status, domain.OrderStatusCancelled) {
		return ErrCannotCancel
	}
	return u.orderRepo.UpdateStatus(ctx, id, userID, domain.OrderStatusCancelled)
}

// NewOrderNumber generates the customer-facing order reference shown on
// the confirmation page, e.g. AB-48213.
func NewOrderNumber() string {
	return fmt.Sprintf("AB-%05d", 10000+rand.IntN(90000))
}

func formatShippingAddress(f checkout.ShippingForm) string {
	parts := []string{
		f.FirstName + " " + f.LastName,
		f.Address,
		f.City,
		f.Region,
	}
	if f.PostalCode != "" {
		parts = append(parts, f.PostalCode)
	}
	parts = append(parts, f.Phone)
	return strings.Join(parts, ", ")
}
