package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatusTransitionForwardOnly(t *testing.T) {
	assert.True(t, ValidStatusTransition(OrderStatusPending, OrderStatusProcessing))
	assert.True(t, ValidStatusTransition(OrderStatusProcessing, OrderStatusShipped))
	assert.True(t, ValidStatusTransition(OrderStatusShipped, OrderStatusDelivered))

	assert.False(t, ValidStatusTransition(OrderStatusShipped, OrderStatusPending))
	assert.False(t, ValidStatusTransition(OrderStatusDelivered, OrderStatusShipped))
}

func TestTerminalStatusesCannotMove(t *testing.T) {
	assert.False(t, ValidStatusTransition(OrderStatusCancelled, OrderStatusPending))
	assert.False(t, ValidStatusTransition(OrderStatusCancelled, OrderStatusProcessing))
	assert.False(t, ValidStatusTransition(OrderStatusDelivered, OrderStatusCancelled))
}

func TestUnknownStatusesRejected(t *testing.T) {
	assert.False(t, ValidStatusTransition("unknown", OrderStatusPending))
	assert.False(t, ValidStatusTransition(OrderStatusPending, "unknown"))
}

func TestValidPaymentMethodType(t *testing.T) {
	for _, tag := range PaymentMethodTypes {
		assert.True(t, ValidPaymentMethodType(tag), tag)
	}
	assert.False(t, ValidPaymentMethodType("paypal"))
	assert.False(t, ValidPaymentMethodType(""))
}
