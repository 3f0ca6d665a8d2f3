package v1

import (
	"errors"
	"net/http"

	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

type OrderHandler struct {
	usecase *usecase.OrderUsecase
}

func NewOrderHandler(u *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{usecase: u}
}

func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.usecase.GetMyOrders(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.usecase.GetOrder(r.Context(), r.PathValue("id"), user.ID)
	if errors.Is(err, usecase.ErrOrderNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.usecase.CancelOrder(r.Context(), r.PathValue("id"), user.ID)
	if errors.Is(err, usecase.ErrOrderNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	if errors.Is(err, usecase.ErrCannotCancel) {
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled"})
}
