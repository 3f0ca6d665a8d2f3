package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yab-g4u/Ablack/internal/domain"
)

func TestAddRejectsUnknownType(t *testing.T) {
	uc := NewPaymentMethodUsecase(newFakePaymentRepo(), fakeTxManager{})

	_, err := uc.Add(context.Background(), "user-1", "paypal", domain.JSONB{}, false)
	assert.ErrorIs(t, err, ErrUnknownPaymentType)
}

func TestAddDefaultUnsetsPreviousDefault(t *testing.T) {
	uc := NewPaymentMethodUsecase(newFakePaymentRepo(), fakeTxManager{})
	ctx := context.Background()

	first, err := uc.Add(ctx, "user-1", domain.PaymentMethodTelebirr, domain.JSONB{"phoneNumber": "+251911223344"}, true)
	require.NoError(t, err)

	second, err := uc.Add(ctx, "user-1", domain.PaymentMethodCard, domain.JSONB{"cardLast4": "4242"}, true)
	require.NoError(t, err)

	methods, err := uc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, methods, 2)

	defaults := 0
	for _, m := range methods {
		if m.IsDefault {
			defaults++
			assert.Equal(t, second.ID, m.ID)
		} else {
			assert.Equal(t, first.ID, m.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestListReturnsDefaultFirst(t *testing.T) {
	uc := NewPaymentMethodUsecase(newFakePaymentRepo(), fakeTxManager{})
	ctx := context.Background()

	_, err := uc.Add(ctx, "user-1", domain.PaymentMethodTelebirr, domain.JSONB{}, false)
	require.NoError(t, err)
	def, err := uc.Add(ctx, "user-1", domain.PaymentMethodCBE, domain.JSONB{}, true)
	require.NoError(t, err)

	methods, err := uc.List(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, methods)
	assert.Equal(t, def.ID, methods[0].ID)
}

func TestUpdatePromoteToDefault(t *testing.T) {
	uc := NewPaymentMethodUsecase(newFakePaymentRepo(), fakeTxManager{})
	ctx := context.Background()

	first, err := uc.Add(ctx, "user-1", domain.PaymentMethodTelebirr, domain.JSONB{}, true)
	require.NoError(t, err)
	second, err := uc.Add(ctx, "user-1", domain.PaymentMethodAmole, domain.JSONB{}, false)
	require.NoError(t, err)

	second.IsDefault = true
	_, err = uc.Update(ctx, second)
	require.NoError(t, err)

	methods, err := uc.List(ctx, "user-1")
	require.NoError(t, err)
	for _, m := range methods {
		if m.ID == first.ID {
			assert.False(t, m.IsDefault)
		}
		if m.ID == second.ID {
			assert.True(t, m.IsDefault)
		}
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	uc := NewPaymentMethodUsecase(newFakePaymentRepo(), fakeTxManager{})
	ctx := context.Background()

	pm, err := uc.Add(ctx, "user-1", domain.PaymentMethodTelebirr, domain.JSONB{}, false)
	require.NoError(t, err)

	assert.Error(t, uc.Delete(ctx, pm.ID, "user-2"))
	assert.NoError(t, uc.Delete(ctx, pm.ID, "user-1"))
}
