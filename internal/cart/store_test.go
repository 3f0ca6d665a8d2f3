package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yab-g4u/Ablack/pkg/kvstore"
)

func newTestStore() *Store {
	return NewStore(kvstore.NewMemoryStore(), time.Hour)
}

func TestLoadEmptyCart(t *testing.T) {
	s := newTestStore()

	c, err := s.Load(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestMutatePersistsAcrossLoads(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Mutate(ctx, "owner-1", func(c *Cart) error {
		c.Add(item("p1", "249.00", 2))
		return nil
	})
	require.NoError(t, err)

	c, err := s.Load(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestMutateIsolatesOwners(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Mutate(ctx, "owner-1", func(c *Cart) error {
		c.Add(item("p1", "249.00", 1))
		return nil
	})
	require.NoError(t, err)

	c, err := s.Load(ctx, "owner-2")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestSequentialMutationsDoNotDropWrites(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := s.Mutate(ctx, "owner-1", func(c *Cart) error {
			c.Add(item("p1", "10.00", 1))
			return nil
		})
		require.NoError(t, err)
	}

	c, err := s.Load(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 10, c.Count())
}

func TestSnapshotFailsOnEmptyCart(t *testing.T) {
	s := newTestStore()

	_, err := s.Snapshot(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSnapshotHandsOffToCheckout(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Mutate(ctx, "owner-1", func(c *Cart) error {
		c.Add(item("p1", "249.00", 1))
		c.Add(item("p2", "189.00", 1))
		return nil
	})
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, snap, 2)

	// Mutating the cart afterwards must not touch the snapshot.
	_, err = s.Mutate(ctx, "owner-1", func(c *Cart) error {
		c.Remove("p1")
		return nil
	})
	require.NoError(t, err)

	items, err := s.CheckoutItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("249.00")))
}

func TestClearDropsCartAndSnapshot(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Mutate(ctx, "owner-1", func(c *Cart) error {
		c.Add(item("p1", "249.00", 1))
		return nil
	})
	require.NoError(t, err)
	_, err = s.Snapshot(ctx, "owner-1")
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, "owner-1"))

	c, err := s.Load(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, c.Empty())

	items, err := s.CheckoutItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
