package domain

import (
	"context"
	"time"
)

// WishlistItem is the backend-resident wishlist entry of a signed-in user.
type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type WishlistRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]WishlistItem, error)
	// Add inserts the pair; a duplicate insert is reported via ErrDuplicate
	// so callers can treat it as an idempotent success.
	Add(ctx context.Context, userID, productID string) (*WishlistItem, error)
	Remove(ctx context.Context, userID, productID string) error
}
