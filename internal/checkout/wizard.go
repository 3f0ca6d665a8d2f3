package checkout

import (
	"errors"
	"time"

	"github.com/yab-g4u/Ablack/internal/domain"
)

// Stage is the wizard position. Forward moves advance by exactly one,
// back moves retreat by exactly one, bounded to [Shipping, Confirmation].
type Stage int

const (
	StageShipping Stage = iota
	StagePayment
	StageReview
	StageConfirmation
)

func (s Stage) String() string {
	switch s {
	case StageShipping:
		return "shipping"
	case StagePayment:
		return "payment"
	case StageReview:
		return "review"
	case StageConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

var (
	// ErrStageInvalid carries no field detail; callers inspect the
	// returned FieldErrors for per-field messages.
	ErrStageInvalid = errors.New("current stage has validation errors")
	ErrAtFirstStage = errors.New("already at the first stage")
	ErrCompleted    = errors.New("checkout already completed")
	ErrNotAtReview  = errors.New("order can only be placed from the review stage")
)

// Wizard holds the whole checkout flow state. It is a plain value:
// persistence and order placement are the caller's concern.
type Wizard struct {
	ID          string       `json:"id"`
	Stage       Stage        `json:"stage"`
	Shipping    ShippingForm `json:"shipping"`
	Payment     PaymentForm  `json:"payment"`
	OrderNumber string       `json:"orderNumber,omitempty"`
	StartedAt   time.Time    `json:"startedAt"`
}

func NewWizard(id string) *Wizard {
	return &Wizard{
		ID:        id,
		Stage:     StageShipping,
		Payment:   PaymentForm{Method: domain.PaymentMethodTelebirr},
		StartedAt: time.Now(),
	}
}

// StageErrors validates the current stage's form in full.
func (w *Wizard) StageErrors() FieldErrors {
	switch w.Stage {
	case StageShipping:
		return w.Shipping.Validate()
	case StagePayment:
		return w.Payment.Validate()
	default:
		return FieldErrors{}
	}
}

// ValidateField runs the blur-level validation for one field of the
// current stage. ok=false means the stage has no such field.
func (w *Wizard) ValidateField(field, value string) (string, bool) {
	switch w.Stage {
	case StageShipping:
		return w.Shipping.ValidateField(field, value)
	case StagePayment:
		method, err := MethodFor(w.Payment.Method)
		if err != nil {
			return "", false
		}
		return method.ValidateField(field, value)
	default:
		return "", false
	}
}

// Advance moves forward one stage. From Shipping and Payment it is gated
// on the full stage validating; moving past Review requires PlaceOrder
// instead. Confirmation is terminal.
func (w *Wizard) Advance() (FieldErrors, error) {
	switch w.Stage {
	case StageShipping, StagePayment:
		if errs := w.StageErrors(); !errs.Valid() {
			return errs, ErrStageInvalid
		}
		w.Stage++
		return nil, nil
	case StageReview:
		return nil, ErrNotAtReview
	default:
		return nil, ErrCompleted
	}
}

// PlaceOrder moves Review to Confirmation, recording the order number
// shown on the confirmation page.
func (w *Wizard) PlaceOrder(orderNumber string) error {
	if w.Stage == StageConfirmation {
		return ErrCompleted
	}
	if w.Stage != StageReview {
		return ErrNotAtReview
	}
	w.OrderNumber = orderNumber
	w.Stage = StageConfirmation
	return nil
}

// Back moves one stage backwards. Shipping has nothing before it and
// Confirmation has no back transition.
func (w *Wizard) Back() error {
	switch w.Stage {
	case StageShipping:
		return ErrAtFirstStage
	case StageConfirmation:
		return ErrCompleted
	default:
		w.Stage--
		return nil
	}
}

// Completed reports whether the flow reached its terminal stage.
func (w *Wizard) Completed() bool {
	return w.Stage == StageConfirmation
}
