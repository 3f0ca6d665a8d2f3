package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/internal/checkout"
	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

type CheckoutHandler struct {
	usecase *usecase.CheckoutUsecase
}

func NewCheckoutHandler(u *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{usecase: u}
}

// Start snapshots the cart and opens the wizard at the shipping stage.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	state, err := h.usecase.Start(r.Context(), middleware.Owner(r.Context()))
	if errors.Is(err, usecase.ErrEmptyCart) {
		utils.WriteError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to start checkout")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, state)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.usecase.Get(r.Context(), middleware.Owner(r.Context()))
	if errors.Is(err, usecase.ErrNoCheckout) {
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load checkout")
		return
	}
	utils.WriteJSON(w, http.StatusOK, state)
}

func (h *CheckoutHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	var form checkout.ShippingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	wizard, err := h.usecase.UpdateShipping(r.Context(), middleware.Owner(r.Context()), form)
	if errors.Is(err, usecase.ErrNoCheckout) {
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save shipping details")
		return
	}
	utils.WriteJSON(w, http.StatusOK, wizard)
}

func (h *CheckoutHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var form checkout.PaymentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if _, err := checkout.MethodFor(form.Method); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}

	wizard, err := h.usecase.UpdatePayment(r.Context(), middleware.Owner(r.Context()), form)
	if errors.Is(err, usecase.ErrNoCheckout) {
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save payment details")
		return
	}
	utils.WriteJSON(w, http.StatusOK, wizard)
}

type validateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ValidateField mirrors on-blur validation: one field, one message.
func (h *CheckoutHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req validateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	msg, known, err := h.usecase.ValidateField(r.Context(), middleware.Owner(r.Context()), req.Field, req.Value)
	if errors.Is(err, usecase.ErrNoCheckout) {
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Validation failed")
		return
	}
	if !known {
		utils.WriteError(w, http.StatusBadRequest, "Unknown field for the current stage")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"field": req.Field,
		"valid": msg == "",
		"error": msg,
	})
}

// Advance moves forward one stage; from review it places the order.
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	userID := ""
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		userID = user.ID
	}

	state, fieldErrs, err := h.usecase.Advance(r.Context(), owner, userID)
	switch {
	case errors.Is(err, checkout.ErrStageInvalid):
		utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"fields": fieldErrs,
		})
		return
	case errors.Is(err, usecase.ErrNoCheckout):
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	case errors.Is(err, usecase.ErrSignInNeeded):
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, usecase.ErrEmptyCart):
		utils.WriteError(w, http.StatusBadRequest, "Cart is empty")
		return
	case errors.Is(err, checkout.ErrCompleted):
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		utils.WriteError(w, http.StatusInternalServerError, "Failed to advance checkout")
		return
	}
	utils.WriteJSON(w, http.StatusOK, state)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	state, err := h.usecase.Back(r.Context(), middleware.Owner(r.Context()))
	switch {
	case errors.Is(err, usecase.ErrNoCheckout):
		utils.WriteError(w, http.StatusNotFound, "No checkout in progress")
		return
	case errors.Is(err, checkout.ErrAtFirstStage), errors.Is(err, checkout.ErrCompleted):
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		utils.WriteError(w, http.StatusInternalServerError, "Failed to go back")
		return
	}
	utils.WriteJSON(w, http.StatusOK, state)
}

func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.usecase.Totals(r.Context(), middleware.Owner(r.Context()))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to compute totals")
		return
	}
	utils.WriteJSON(w, http.StatusOK, totals.Display())
}
