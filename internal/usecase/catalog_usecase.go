package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/pkg/cache"
	"github.com/yab-g4u/Ablack/pkg/logger"
)

type CatalogUsecase struct {
	productRepo domain.ProductRepository
	cache       cache.CacheService
	productTTL  time.Duration
	catalogTTL  time.Duration
}

func NewCatalogUsecase(productRepo domain.ProductRepository, cacheService cache.CacheService, productTTL, catalogTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo: productRepo,
		cache:       cacheService,
		productTTL:  productTTL,
		catalogTTL:  catalogTTL,
	}
}

// ListProducts returns the catalog, filtered. When the database is
// unreachable the static placeholder catalog is served instead so the
// shop page still renders.
func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	key := catalogCacheKey(filter)
	if cached, found := u.cache.Get(key); found {
		return cached.([]domain.Product), nil
	}

	products, err := u.productRepo.GetAll(ctx, filter)
	if err != nil {
		logger.Warn().Err(err).Msg("catalog unavailable, serving placeholders")
		return placeholdersFor(filter), nil
	}

	u.cache.Set(key, products, u.catalogTTL)
	return products, nil
}

// GetProduct returns one product, degrading to a placeholder when the
// id is unknown or the database is down.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := "product:" + id
	if cached, found := u.cache.Get(key); found {
		return cached.(*domain.Product), nil
	}

	product, err := u.productRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.PlaceholderProduct(id), nil
	}
	if err != nil {
		logger.Warn().Err(err).Str("product_id", id).Msg("product lookup failed, serving placeholder")
		return domain.PlaceholderProduct(id), nil
	}

	u.cache.Set(key, product, u.productTTL)
	return product, nil
}

// SearchProducts matches against name and description.
func (u *CatalogUsecase) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.ListProducts(ctx, domain.ProductFilter{})
	}
	products, err := u.productRepo.Search(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("search failed, matching placeholders")
		lower := strings.ToLower(query)
		var matched []domain.Product
		for _, p := range domain.PlaceholderProducts {
			if strings.Contains(strings.ToLower(p.Name), lower) ||
				strings.Contains(strings.ToLower(p.Description), lower) {
				matched = append(matched, p)
			}
		}
		return matched, nil
	}
	return products, nil
}

func catalogCacheKey(filter domain.ProductFilter) string {
	var sb strings.Builder
	sb.WriteString("catalog:")
	sb.WriteString(filter.Category)
	if filter.MinPrice != nil {
		fmt.Fprintf(&sb, ":min=%g", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		fmt.Fprintf(&sb, ":max=%g", *filter.MaxPrice)
	}
	if filter.Search != "" {
		sb.WriteString(":q=" + filter.Search)
	}
	return sb.String()
}

func placeholdersFor(filter domain.ProductFilter) []domain.Product {
	if filter.Category == "" || filter.Category == "all" {
		return domain.PlaceholderProducts
	}
	var matched []domain.Product
	for _, p := range domain.PlaceholderProducts {
		if p.Category == filter.Category {
			matched = append(matched, p)
		}
	}
	return matched
}
