package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/pkg/kvstore"
)

const (
	cartKeyPrefix = "cart:"
	// checkoutKeyPrefix is the fixed handoff key: the cart writes a
	// snapshot here and the checkout page reads it back.
	checkoutKeyPrefix = "checkout:items:"

	casRetries = 5
)

// ErrConflict is returned when a mutation keeps losing the compare-and-
// swap race against concurrent writers.
var ErrConflict = errors.New("cart: concurrent modification, retry")

// ErrEmpty is returned by Snapshot when there is nothing to hand off.
var ErrEmpty = errors.New("cart: empty")

// Store persists carts in the key-value store. Mutations go through a
// read-modify-CompareAndSwap loop so two rapid updates serialize instead
// of silently dropping one.
type Store struct {
	kv  kvstore.Store
	ttl time.Duration
}

func NewStore(kv kvstore.Store, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Load returns the owner's cart, empty if none was saved yet.
func (s *Store) Load(ctx context.Context, owner string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, cartKeyPrefix+owner)
	if errors.Is(err, kvstore.ErrNotFound) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &Cart{items: items}, nil
}

// Mutate applies fn to the owner's cart and persists the result with a
// bounded CAS retry.
func (s *Store) Mutate(ctx context.Context, owner string, fn func(*Cart) error) (*Cart, error) {
	key := cartKeyPrefix + owner
	for attempt := 0; attempt < casRetries; attempt++ {
		old, err := s.kv.Get(ctx, key)
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return nil, fmt.Errorf("load cart: %w", err)
		}

		c := &Cart{}
		if old != nil {
			if err := json.Unmarshal(old, &c.items); err != nil {
				return nil, fmt.Errorf("decode cart: %w", err)
			}
		}

		if err := fn(c); err != nil {
			return nil, err
		}

		updated, err := json.Marshal(c.items)
		if err != nil {
			return nil, fmt.Errorf("encode cart: %w", err)
		}

		swapped, err := s.kv.CompareAndSwap(ctx, key, old, updated, s.ttl)
		if err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
		if swapped {
			return c, nil
		}
	}
	return nil, ErrConflict
}

// Snapshot copies the current item list under the checkout handoff key
// and returns the items. The cart itself is left untouched; the two
// views stay decoupled through this single write/read.
func (s *Store) Snapshot(ctx context.Context, owner string) ([]Item, error) {
	c, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmpty
	}
	raw, err := json.Marshal(c.items)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, checkoutKeyPrefix+owner, raw, s.ttl); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	return c.Items(), nil
}

// CheckoutItems reads the handoff snapshot written by Snapshot.
func (s *Store) CheckoutItems(ctx context.Context, owner string) ([]Item, error) {
	raw, err := s.kv.Get(ctx, checkoutKeyPrefix+owner)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return items, nil
}

// Clear drops the cart and its checkout snapshot, used after an order is
// placed.
func (s *Store) Clear(ctx context.Context, owner string) error {
	if err := s.kv.Delete(ctx, cartKeyPrefix+owner); err != nil {
		return err
	}
	return s.kv.Delete(ctx, checkoutKeyPrefix+owner)
}
