package service

import (
	"testing"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/shopspring/decimal"
)

func setupProductServiceTest(t *testing.T) *ProductService {
	t.Helper()
	db := newServiceTestDB(t)
	return NewProductService(repository.NewProductRepository(db))
}

func TestProductCreateRejectsDuplicateSlug(t *testing.T) {
	svc := setupProductServiceTest(t)

	input := ProductInput{
		Slug:  "gaming-mouse",
		Name:  "Gaming Mouse",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(590000)),
		Stock: 10,
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(input); err != ErrSlugExists {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}
}

func TestProductCreateRejectsSlugOfDeletedProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	input := ProductInput{
		Slug:  "retired-keyboard",
		Name:  "Retired Keyboard",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(990000)),
		Stock: 5,
	}
	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The soft-deleted row still holds the unique slug index slot, so the
	// check has to answer before the insert hits the constraint.
	if _, err := svc.Create(input); err != ErrSlugExists {
		t.Fatalf("slug of deleted product want ErrSlugExists got %v", err)
	}
}

func TestProductUpdateRejectsSlugOfDeletedProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	gone, err := svc.Create(ProductInput{
		Slug:  "old-headset",
		Name:  "Old Headset",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(450000)),
	})
	if err != nil {
		t.Fatalf("create gone failed: %v", err)
	}
	if err := svc.Delete(gone.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	kept, err := svc.Create(ProductInput{
		Slug:  "new-headset",
		Name:  "New Headset",
		Price: models.NewMoneyFromDecimal(decimal.NewFromInt(650000)),
	})
	if err != nil {
		t.Fatalf("create kept failed: %v", err)
	}

	if _, err := svc.Update(kept.ID, ProductInput{Slug: "old-headset", Name: "New Headset"}); err != ErrSlugExists {
		t.Fatalf("rename onto deleted slug want ErrSlugExists got %v", err)
	}
}
