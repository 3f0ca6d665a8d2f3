package usecase

import (
	"context"
	"errors"

	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/pkg/logger"
)

// WishlistUsecase is the account-backed wishlist of signed-in users.
// The anonymous, device-local wishlist lives in internal/wishlist.
type WishlistUsecase struct {
	wishlistRepo domain.WishlistRepository
}

func NewWishlistUsecase(wishlistRepo domain.WishlistRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo}
}

func (u *WishlistUsecase) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	return u.wishlistRepo.GetByUserID(ctx, userID)
}

// Add is idempotent: adding a product that is already on the wishlist
// succeeds without creating a second row.
func (u *WishlistUsecase) Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, error) {
	item, err := u.wishlistRepo.Add(ctx, userID, productID)
	if errors.Is(err, domain.ErrDuplicate) {
		logger.Debug().Str("user_id", userID).Str("product_id", productID).Msg("wishlist add ignored, already present")
		return &domain.WishlistItem{UserID: userID, ProductID: productID}, nil
	}
	return item, err
}

// Remove drops the entry; removing something absent is not an error.
func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID string) error {
	err := u.wishlistRepo.Remove(ctx, userID, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
