package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/yab-g4u/Ablack/internal/cart"
	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

// CartHandler serves the cart of the current owner (signed-in user or
// anonymous client). Prices come from the catalog, never from the
// request body.
type CartHandler struct {
	store       *cart.Store
	catalog     *usecase.CatalogUsecase
	maxQuantity int
}

func NewCartHandler(store *cart.Store, catalog *usecase.CatalogUsecase, maxQuantity int) *CartHandler {
	return &CartHandler{store: store, catalog: catalog, maxQuantity: maxQuantity}
}

type cartResponse struct {
	Items    []cart.Item `json:"items"`
	Count    int         `json:"count"`
	Subtotal string      `json:"subtotal"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	items := c.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{
		Items:    items,
		Count:    c.Count(),
		Subtotal: c.Subtotal().StringFixed(2),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Load(r.Context(), middleware.Owner(r.Context()))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(c))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity > h.maxQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds the allowed maximum")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	item := cart.Item{
		ID:       product.ID,
		Name:     product.Name,
		Price:    decimal.NewFromFloat(product.Price),
		Quantity: req.Quantity,
		ImageURL: product.ImageURL,
		Size:     req.Size,
	}

	c, err := h.store.Mutate(r.Context(), middleware.Owner(r.Context()), func(c *cart.Cart) error {
		c.Add(item)
		return nil
	})
	if errors.Is(err, cart.ErrConflict) {
		utils.WriteError(w, http.StatusConflict, "Cart was modified concurrently, retry")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(c))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Quantity > h.maxQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds the allowed maximum")
		return
	}

	id := r.PathValue("id")
	c, err := h.store.Mutate(r.Context(), middleware.Owner(r.Context()), func(c *cart.Cart) error {
		c.UpdateQuantity(id, req.Quantity)
		return nil
	})
	if errors.Is(err, cart.ErrConflict) {
		utils.WriteError(w, http.StatusConflict, "Cart was modified concurrently, retry")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := h.store.Mutate(r.Context(), middleware.Owner(r.Context()), func(c *cart.Cart) error {
		c.Remove(id)
		return nil
	})
	if errors.Is(err, cart.ErrConflict) {
		utils.WriteError(w, http.StatusConflict, "Cart was modified concurrently, retry")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(c))
}
