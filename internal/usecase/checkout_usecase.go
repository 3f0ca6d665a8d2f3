package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/yab-g4u/Ablack/internal/cart"
	"github.com/yab-g4u/Ablack/internal/checkout"
	"github.com/yab-g4u/Ablack/pkg/kvstore"
)

const wizardKeyPrefix = "wizard:"

var (
	ErrNoCheckout   = errors.New("no checkout in progress")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrSignInNeeded = errors.New("sign in to place an order")
)

// CheckoutUsecase drives the four-stage wizard: state is loaded from the
// key-value store, mutated through the wizard's own transitions, and
// written back. Order placement happens exactly once, on the forward
// move out of review.
type CheckoutUsecase struct {
	kv          kvstore.Store
	carts       *cart.Store
	orders      *OrderUsecase
	shippingFee decimal.Decimal
	ttl         time.Duration
}

func NewCheckoutUsecase(kv kvstore.Store, carts *cart.Store, orders *OrderUsecase, shippingFee decimal.Decimal, ttl time.Duration) *CheckoutUsecase {
	return &CheckoutUsecase{
		kv:          kv,
		carts:       carts,
		orders:      orders,
		shippingFee: shippingFee,
		ttl:         ttl,
	}
}

// CheckoutState is the wizard plus everything the page renders alongside
// it: the snapshotted items and the derived totals.
type CheckoutState struct {
	Wizard *checkout.Wizard  `json:"wizard"`
	Items  []cart.Item       `json:"items"`
	Totals map[string]string `json:"totals"`
}

// Start snapshots the cart and opens a fresh wizard at the shipping
// stage, replacing any earlier unfinished one.
func (u *CheckoutUsecase) Start(ctx context.Context, owner string) (*CheckoutState, error) {
	items, err := u.carts.Snapshot(ctx, owner)
	if errors.Is(err, cart.ErrEmpty) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}

	w := checkout.NewWizard(owner)
	if err := u.save(ctx, owner, w); err != nil {
		return nil, err
	}
	return u.state(w, items), nil
}

// Get returns the current checkout, or ErrNoCheckout.
func (u *CheckoutUsecase) Get(ctx context.Context, owner string) (*CheckoutState, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	items, err := u.carts.CheckoutItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	return u.state(w, items), nil
}

// UpdateShipping stores the shipping form without validating it; full
// validation gates Advance, field errors surface via ValidateField.
func (u *CheckoutUsecase) UpdateShipping(ctx context.Context, owner string, form checkout.ShippingForm) (*checkout.Wizard, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	w.Shipping = form
	return w, u.save(ctx, owner, w)
}

// UpdatePayment stores the payment form; switching the method keeps the
// other fields so flipping back does not lose input.
func (u *CheckoutUsecase) UpdatePayment(ctx context.Context, owner string, form checkout.PaymentForm) (*checkout.Wizard, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	w.Payment = form
	return w, u.save(ctx, owner, w)
}

// ValidateField runs single-field validation for the current stage,
// mirroring on-blur feedback.
func (u *CheckoutUsecase) ValidateField(ctx context.Context, owner, field, value string) (string, bool, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return "", false, err
	}
	msg, ok := w.ValidateField(field, value)
	return msg, ok, nil
}

// Advance moves the wizard forward one stage. Out of shipping and
// payment it is blocked until the stage validates; out of review it
// places the order, clears the cart, and lands on confirmation.
func (u *CheckoutUsecase) Advance(ctx context.Context, owner, userID string) (*CheckoutState, checkout.FieldErrors, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	if w.Stage == checkout.StageReview {
		state, err := u.placeOrder(ctx, owner, userID, w)
		return state, nil, err
	}

	fieldErrs, err := w.Advance()
	if errors.Is(err, checkout.ErrStageInvalid) {
		return nil, fieldErrs, err
	}
	if err != nil {
		return nil, nil, err
	}
	if err := u.save(ctx, owner, w); err != nil {
		return nil, nil, err
	}

	items, err := u.carts.CheckoutItems(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	return u.state(w, items), nil, nil
}

// Back moves one stage backwards, preserving all entered fields.
func (u *CheckoutUsecase) Back(ctx context.Context, owner string) (*CheckoutState, error) {
	w, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := w.Back(); err != nil {
		return nil, err
	}
	if err := u.save(ctx, owner, w); err != nil {
		return nil, err
	}
	items, err := u.carts.CheckoutItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	return u.state(w, items), nil
}

// Totals recomputes the summary panel amounts from the snapshot.
func (u *CheckoutUsecase) Totals(ctx context.Context, owner string) (checkout.Totals, error) {
	items, err := u.carts.CheckoutItems(ctx, owner)
	if err != nil {
		return checkout.Totals{}, err
	}
	return checkout.ComputeTotals(items, u.shippingFee), nil
}

func (u *CheckoutUsecase) placeOrder(ctx context.Context, owner, userID string, w *checkout.Wizard) (*CheckoutState, error) {
	if userID == "" {
		return nil, ErrSignInNeeded
	}

	items, err := u.carts.CheckoutItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := u.orders.PlaceOrder(ctx, userID, items, w.Shipping, w.Payment)
	if err != nil {
		return nil, err
	}

	if err := w.PlaceOrder(order.OrderNumber); err != nil {
		return nil, err
	}
	if err := u.save(ctx, owner, w); err != nil {
		return nil, err
	}
	if err := u.carts.Clear(ctx, owner); err != nil {
		return nil, err
	}
	return u.state(w, items), nil
}

func (u *CheckoutUsecase) state(w *checkout.Wizard, items []cart.Item) *CheckoutState {
	return &CheckoutState{
		Wizard: w,
		Items:  items,
		Totals: checkout.ComputeTotals(items, u.shippingFee).Display(),
	}
}

func (u *CheckoutUsecase) load(ctx context.Context, owner string) (*checkout.Wizard, error) {
	raw, err := u.kv.Get(ctx, wizardKeyPrefix+owner)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrNoCheckout
	}
	if err != nil {
		return nil, err
	}
	var w checkout.Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode checkout state: %w", err)
	}
	return &w, nil
}

func (u *CheckoutUsecase) save(ctx context.Context, owner string, w *checkout.Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode checkout state: %w", err)
	}
	return u.kv.Set(ctx, wizardKeyPrefix+owner, raw, u.ttl)
}
