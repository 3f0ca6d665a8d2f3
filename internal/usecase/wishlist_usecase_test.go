package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo())
	ctx := context.Background()

	_, err := uc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)

	// The second add hits the unique constraint and is treated as success.
	_, err = uc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)

	items, err := uc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistRemoveAbsentIsNoop(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo())
	assert.NoError(t, uc.Remove(context.Background(), "user-1", "missing"))
}

func TestWishlistScopedToUser(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo())
	ctx := context.Background()

	_, err := uc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)

	items, err := uc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
