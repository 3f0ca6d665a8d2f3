package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yab-g4u/Ablack/internal/domain"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Denim Jacket", Category: "jackets", Price: 249, StockQuantity: 10},
		{ID: "p2", Name: "Denim Trousers", Category: "pants", Price: 189, StockQuantity: 5},
	}
}

func TestListProductsFiltersByCategory(t *testing.T) {
	uc := NewCatalogUsecase(newFakeProductRepo(sampleProducts()...), newFakeCache(), time.Minute, time.Minute)

	products, err := uc.ListProducts(context.Background(), domain.ProductFilter{Category: "jackets"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestListProductsFallsBackToPlaceholders(t *testing.T) {
	repo := newFakeProductRepo()
	repo.fail = true
	uc := NewCatalogUsecase(repo, newFakeCache(), time.Minute, time.Minute)

	products, err := uc.ListProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, len(domain.PlaceholderProducts))
}

func TestListProductsPlaceholderFallbackHonorsCategory(t *testing.T) {
	repo := newFakeProductRepo()
	repo.fail = true
	uc := NewCatalogUsecase(repo, newFakeCache(), time.Minute, time.Minute)

	products, err := uc.ListProducts(context.Background(), domain.ProductFilter{Category: "jackets"})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "jackets", p.Category)
	}
}

func TestGetProductUnknownIDDegradesToPlaceholder(t *testing.T) {
	uc := NewCatalogUsecase(newFakeProductRepo(sampleProducts()...), newFakeCache(), time.Minute, time.Minute)

	product, err := uc.GetProduct(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "missing", product.ID)
	assert.Equal(t, "Product Not Found", product.Name)
	assert.Zero(t, product.StockQuantity)
}

func TestGetProductCachesResult(t *testing.T) {
	repo := newFakeProductRepo(sampleProducts()...)
	uc := NewCatalogUsecase(repo, newFakeCache(), time.Minute, time.Minute)
	ctx := context.Background()

	first, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)

	// Break the repo; the cached copy keeps serving.
	repo.fail = true
	second, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
}

func TestSearchMatchesPlaceholdersWhenRepoDown(t *testing.T) {
	repo := newFakeProductRepo()
	repo.fail = true
	uc := NewCatalogUsecase(repo, newFakeCache(), time.Minute, time.Minute)

	products, err := uc.SearchProducts(context.Background(), "jacket")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Contains(t, p.Name, "Jacket")
	}
}
