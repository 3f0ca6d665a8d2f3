package domain

import (
	"context"
	"time"
)

// Payment method tags. telebirr/cbe/amole are mobile-money channels keyed
// by phone number; card carries the usual card fields.
const (
	PaymentMethodTelebirr = "telebirr"
	PaymentMethodCBE      = "cbe"
	PaymentMethodAmole    = "amole"
	PaymentMethodCard     = "card"
)

var PaymentMethodTypes = []string{
	PaymentMethodTelebirr,
	PaymentMethodCBE,
	PaymentMethodAmole,
	PaymentMethodCard,
}

func ValidPaymentMethodType(t string) bool {
	for _, m := range PaymentMethodTypes {
		if m == t {
			return true
		}
	}
	return false
}

// PaymentMethod is a saved payment method on the account page.
type PaymentMethod struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Details   JSONB     `json:"details"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaymentMethodRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]PaymentMethod, error)
	Create(ctx context.Context, pm *PaymentMethod) error
	Update(ctx context.Context, pm *PaymentMethod) (*PaymentMethod, error)
	Delete(ctx context.Context, id, userID string) error
	// ClearDefault unsets is_default on every method of the user except keep.
	ClearDefault(ctx context.Context, userID, keep string) error
}
