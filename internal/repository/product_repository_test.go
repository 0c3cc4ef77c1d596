package repository

import (
	"testing"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"
)

func TestProductDecrementStockAllowsNegative(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := seedProduct(t, db, "decrement-negative", 100000, 2, constants.ProductStatusAvailable)

	if err := repo.DecrementStock(product.ID, 5); err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if got.Stock != -3 {
		t.Fatalf("stock want -3 got %d", got.Stock)
	}

	// Non-positive quantities are no-ops.
	if err := repo.DecrementStock(product.ID, 0); err != nil {
		t.Fatalf("decrement zero failed: %v", err)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != -3 {
		t.Fatalf("stock want -3 after no-op got %d", got.Stock)
	}
}

func TestProductListFiltersByPriceAndAvailability(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, db, "filter-cheap", 50000, 10, constants.ProductStatusAvailable)
	mid := seedProduct(t, db, "filter-mid", 150000, 10, constants.ProductStatusAvailable)
	seedProduct(t, db, "filter-expensive", 500000, 10, constants.ProductStatusAvailable)
	seedProduct(t, db, "filter-hidden", 150000, 10, constants.ProductStatusUnavailable)

	minPrice := int64(100000)
	maxPrice := int64(200000)
	products, total, err := repo.List(ProductListFilter{
		OnlyAvailable: true,
		MinPrice:      &minPrice,
		MaxPrice:      &maxPrice,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want exactly one match, got total=%d len=%d", total, len(products))
	}
	if products[0].ID != mid.ID {
		t.Fatalf("match want %d got %d", mid.ID, products[0].ID)
	}
}

func TestProductListOrderByPrice(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, db, "sort-b", 300000, 10, constants.ProductStatusAvailable)
	seedProduct(t, db, "sort-a", 100000, 10, constants.ProductStatusAvailable)
	seedProduct(t, db, "sort-c", 200000, 10, constants.ProductStatusAvailable)

	products, _, err := repo.List(ProductListFilter{OrderBy: "price_asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("want 3 products got %d", len(products))
	}
	if products[0].Slug != "sort-a" || products[2].Slug != "sort-b" {
		t.Fatalf("unexpected order: %s, %s, %s", products[0].Slug, products[1].Slug, products[2].Slug)
	}
}

func TestProductGetBySlugMissingReturnsNil(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewProductRepository(db)

	product, err := repo.GetBySlug("does-not-exist")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product != nil {
		t.Fatalf("missing slug should return nil, got %+v", product)
	}
}
