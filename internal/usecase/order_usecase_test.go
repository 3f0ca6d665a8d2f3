package usecase

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yab-g4u/Ablack/internal/cart"
	"github.com/yab-g4u/Ablack/internal/checkout"
	"github.com/yab-g4u/Ablack/internal/domain"
)

var flatFee = decimal.RequireFromString("15.00")

func orderItems() []cart.Item {
	return []cart.Item{
		{ID: "p1", Name: "Denim Jacket", Price: decimal.RequireFromString("249.00"), Quantity: 1, Size: "M"},
		{ID: "p2", Name: "Denim Trousers", Price: decimal.RequireFromString("189.00"), Quantity: 2},
	}
}

func validShippingForm() checkout.ShippingForm {
	return checkout.ShippingForm{
		FirstName:  "Abebe",
		LastName:   "Bikila",
		Email:      "abebe@example.com",
		Phone:      "+251911223344",
		Address:    "Bole Road 12",
		City:       "Addis Ababa",
		Region:     "Addis Ababa",
		PostalCode: "1000",
	}
}

func validPaymentForm() checkout.PaymentForm {
	return checkout.PaymentForm{Method: domain.PaymentMethodTelebirr, PhoneNumber: "+251911223344"}
}

func TestPlaceOrderPersistsOrderItemsAndStock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo(sampleProducts()...)
	uc := NewOrderUsecase(orderRepo, productRepo, fakeTxManager{}, flatFee)

	order, err := uc.PlaceOrder(context.Background(), "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	// 249 + 2*189 + 15 shipping
	assert.InDelta(t, 642.00, order.TotalAmount, 0.001)
	assert.InDelta(t, 15.00, order.ShippingFee, 0.001)
	assert.Len(t, order.Items, 2)

	// Stock decremented per quantity.
	p1, _ := productRepo.GetByID(context.Background(), "p1")
	p2, _ := productRepo.GetByID(context.Background(), "p2")
	assert.Equal(t, 9, p1.StockQuantity)
	assert.Equal(t, 3, p2.StockQuantity)
}

func TestPlaceOrderNumberFormat(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)

	order, err := uc.PlaceOrder(context.Background(), "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^AB-\d{5}$`), order.OrderNumber)
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeProductRepo(), fakeTxManager{}, flatFee)

	_, err := uc.PlaceOrder(context.Background(), "user-1", nil, validShippingForm(), validPaymentForm())
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrderRejectsInvalidForms(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, "user-1", orderItems(), checkout.ShippingForm{}, validPaymentForm())
	assert.ErrorIs(t, err, ErrInvalidShipping)

	_, err = uc.PlaceOrder(ctx, "user-1", orderItems(), validShippingForm(), checkout.PaymentForm{Method: "card"})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestPlaceOrderRollsBackOnInsufficientStock(t *testing.T) {
	productRepo := newFakeProductRepo(domain.Product{ID: "p1", Name: "Denim Jacket", StockQuantity: 1})
	orderRepo := newFakeOrderRepo()
	tx := rollbackTxManager{orders: orderRepo, products: productRepo}
	uc := NewOrderUsecase(orderRepo, productRepo, tx, flatFee)
	ctx := context.Background()

	items := []cart.Item{{ID: "p1", Price: decimal.RequireFromString("249.00"), Quantity: 2}}
	_, err := uc.PlaceOrder(ctx, "user-1", items, validShippingForm(), validPaymentForm())
	require.Error(t, err)

	orders, err := uc.GetMyOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderRollsBackOnItemInsertFailure(t *testing.T) {
	productRepo := newFakeProductRepo(sampleProducts()...)
	orderRepo := newFakeOrderRepo()
	orderRepo.failItems = true
	tx := rollbackTxManager{orders: orderRepo, products: productRepo}
	uc := NewOrderUsecase(orderRepo, productRepo, tx, flatFee)
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.Error(t, err)

	orders, err := uc.GetMyOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Stock must come back with the order.
	p, err := productRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)
}

func TestGetOrderScopedToUser(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUsecase(orderRepo, newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)
	ctx := context.Background()

	order, err := uc.PlaceOrder(ctx, "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.NoError(t, err)

	_, err = uc.GetOrder(ctx, order.ID, "user-2")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	got, err := uc.GetOrder(ctx, order.ID, "user-1")
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestCancelOrderFromPending(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUsecase(orderRepo, newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)
	ctx := context.Background()

	order, err := uc.PlaceOrder(ctx, "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.NoError(t, err)

	require.NoError(t, uc.CancelOrder(ctx, order.ID, "user-1"))

	got, err := uc.GetOrder(ctx, order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUsecase(orderRepo, newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)
	ctx := context.Background()

	order, err := uc.PlaceOrder(ctx, "user-1", orderItems(), validShippingForm(), validPaymentForm())
	require.NoError(t, err)
	require.NoError(t, orderRepo.UpdateStatus(ctx, order.ID, "user-1", domain.OrderStatusShipped))

	assert.ErrorIs(t, uc.CancelOrder(ctx, order.ID, "user-1"), ErrCannotCancel)
}

func TestPlaceOrderMasksCardDetails(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeProductRepo(sampleProducts()...), fakeTxManager{}, flatFee)

	payment := checkout.PaymentForm{
		Method:     domain.PaymentMethodCard,
		CardNumber: "4242424242424242",
		CardName:   "Abebe Bikila",
		ExpiryDate: "09/27",
		CVV:        "123",
	}
	order, err := uc.PlaceOrder(context.Background(), "user-1", orderItems(), validShippingForm(), payment)
	require.NoError(t, err)

	assert.Equal(t, "4242", order.PaymentDetails["cardLast4"])
	assert.NotContains(t, order.PaymentDetails, "cardNumber")
	assert.NotContains(t, order.PaymentDetails, "cvv")
}
