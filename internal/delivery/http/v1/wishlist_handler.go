package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/internal/wishlist"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

// WishlistHandler serves both wishlist flavors: the device-local list
// keyed by the anonymous client id, and the account-backed one for
// signed-in users.
type WishlistHandler struct {
	local  *wishlist.Store
	remote *usecase.WishlistUsecase
}

func NewWishlistHandler(local *wishlist.Store, remote *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{local: local, remote: remote}
}

// --- Local (anonymous) wishlist ---

func (h *WishlistHandler) GetLocal(w http.ResponseWriter, r *http.Request) {
	entries, err := h.local.Entries(r.Context(), middleware.Owner(r.Context()))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}
	if entries == nil {
		entries = []wishlist.Entry{}
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}

type toggleRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	added, err := h.local.Toggle(r.Context(), middleware.Owner(r.Context()), req.ProductID, req.Name)
	if errors.Is(err, wishlist.ErrConflict) {
		utils.WriteError(w, http.StatusConflict, "Wishlist was modified concurrently, retry")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"inWishlist": added})
}

// --- Remote (account) wishlist ---

func (h *WishlistHandler) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.remote.List(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	item, err := h.remote.Add(r.Context(), user.ID, req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.remote.Remove(r.Context(), user.ID, r.PathValue("productId")); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}
