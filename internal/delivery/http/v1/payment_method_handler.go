package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

type PaymentMethodHandler struct {
	usecase *usecase.PaymentMethodUsecase
}

func NewPaymentMethodHandler(u *usecase.PaymentMethodUsecase) *PaymentMethodHandler {
	return &PaymentMethodHandler{usecase: u}
}

func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	methods, err := h.usecase.List(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load payment methods")
		return
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	utils.WriteJSON(w, http.StatusOK, methods)
}

type paymentMethodRequest struct {
	Type      string       `json:"type"`
	Details   domain.JSONB `json:"details"`
	IsDefault bool         `json:"isDefault"`
}

func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req paymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pm, err := h.usecase.Add(r.Context(), user.ID, req.Type, req.Details, req.IsDefault)
	if errors.Is(err, usecase.ErrUnknownPaymentType) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save payment method")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, pm)
}

func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req paymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pm := &domain.PaymentMethod{
		ID:        r.PathValue("id"),
		UserID:    user.ID,
		Type:      req.Type,
		Details:   req.Details,
		IsDefault: req.IsDefault,
	}

	updated, err := h.usecase.Update(r.Context(), pm)
	if errors.Is(err, usecase.ErrUnknownPaymentType) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Payment method not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update payment method")
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.usecase.Delete(r.Context(), r.PathValue("id"), user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Payment method not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete payment method")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Payment method deleted"})
}
