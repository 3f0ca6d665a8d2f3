package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/yab-g4u/Ablack/internal/domain"
)

var ErrUnknownPaymentType = errors.New("unknown payment method type")

type PaymentMethodUsecase struct {
	paymentRepo domain.PaymentMethodRepository
	txManager   domain.TransactionManager
}

func NewPaymentMethodUsecase(paymentRepo domain.PaymentMethodRepository, txManager domain.TransactionManager) *PaymentMethodUsecase {
	return &PaymentMethodUsecase{paymentRepo: paymentRepo, txManager: txManager}
}

// List returns the user's saved methods, default first.
func (u *PaymentMethodUsecase) List(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	return u.paymentRepo.GetByUserID(ctx, userID)
}

// Add saves a new method. When it is marked default, the previous
// default is unset in the same transaction so at most one method carries
// the flag.
func (u *PaymentMethodUsecase) Add(ctx context.Context, userID, methodType string, details domain.JSONB, isDefault bool) (*domain.PaymentMethod, error) {
	if !domain.ValidPaymentMethodType(methodType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, methodType)
	}

	pm := &domain.PaymentMethod{
		UserID:    userID,
		Type:      methodType,
		Details:   details,
		IsDefault: isDefault,
	}
	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.paymentRepo.Create(ctx, pm); err != nil {
			return err
		}
		if pm.IsDefault {
			return u.paymentRepo.ClearDefault(ctx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pm, nil
}

// Update rewrites a method, keeping the single-default invariant.
func (u *PaymentMethodUsecase) Update(ctx context.Context, pm *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	if !domain.ValidPaymentMethodType(pm.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, pm.Type)
	}

	var updated *domain.PaymentMethod
	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = u.paymentRepo.Update(ctx, pm)
		if err != nil {
			return err
		}
		if updated.IsDefault {
			return u.paymentRepo.ClearDefault(ctx, pm.UserID, updated.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *PaymentMethodUsecase) Delete(ctx context.Context, id, userID string) error {
	return u.paymentRepo.Delete(ctx, id, userID)
}
