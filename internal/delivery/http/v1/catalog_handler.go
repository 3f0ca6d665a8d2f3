package v1

import (
	"net/http"

	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

type CatalogHandler struct {
	usecase *usecase.CatalogUsecase
}

func NewCatalogHandler(u *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{usecase: u}
}

// ListProducts handles GET /products?category=&min_price=&max_price=&q=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if v := utils.ParseFloat(q.Get("min_price"), -1); v >= 0 {
		filter.MinPrice = &v
	}
	if v := utils.ParseFloat(q.Get("max_price"), -1); v >= 0 {
		filter.MaxPrice = &v
	}

	products, err := h.usecase.ListProducts(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.usecase.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.usecase.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	utils.WriteJSON(w, http.StatusOK, products)
}
