package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a small key-value persistence abstraction. It stands in for
// the browser-local storage the storefront UI uses (wishlist, cart
// snapshot, visit marker, checkout wizard state) so the medium is
// swappable and read-modify-write races can be closed with
// CompareAndSwap instead of last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// CompareAndSwap writes newValue only if the current value equals
	// oldValue. A nil oldValue means the key must be absent. It returns
	// false (and no error) when the comparison fails.
	CompareAndSwap(ctx context.Context, key string, oldValue, newValue []byte, ttl time.Duration) (bool, error)
}
