package service

import (
	"testing"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	user := createTestUser(t, db, "cart-accumulate@test.local")
	product := createTestProduct(t, db, "cart-accumulate", 150000, 10)

	if _, err := svc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	detail, err := svc.AddItem(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", detail.Items[0].Quantity)
	}
	want := decimal.NewFromInt(750000)
	if !detail.Total.Decimal.Equal(want) {
		t.Fatalf("total want %s got %s", want, detail.Total.Decimal)
	}
}

func TestCartGetEmptyCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	user := createTestUser(t, db, "cart-empty@test.local")

	detail, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get empty cart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(detail.Items))
	}
	if !detail.Total.Decimal.IsZero() {
		t.Fatalf("total want 0 got %s", detail.Total.Decimal)
	}
}

func TestCartUpdateQuantityStoredVerbatim(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	user := createTestUser(t, db, "cart-verbatim@test.local")
	product := createTestProduct(t, db, "cart-verbatim", 99000, 10)

	if _, err := svc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	detail, err := svc.UpdateQuantity(user.ID, product.ID, 0)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 0 {
		t.Fatalf("expected one line with quantity 0, got %+v", detail.Items)
	}

	var stored models.CartItem
	if err := db.Where("product_id = ?", product.ID).First(&stored).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}
	if stored.Quantity != 0 {
		t.Fatalf("stored quantity want 0 got %d", stored.Quantity)
	}
}

func TestCartAddItemRejectsInvalidInput(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	user := createTestUser(t, db, "cart-invalid@test.local")
	product := createTestProduct(t, db, "cart-invalid", 10000, 5)

	if _, err := svc.AddItem(user.ID, product.ID, 0); err != ErrInvalidCartItem {
		t.Fatalf("zero quantity want ErrInvalidCartItem got %v", err)
	}
	if _, err := svc.AddItem(user.ID, product.ID+1000, 1); err != ErrProductNotFound {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
}

func TestCartReplaceDropsInvalidLines(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	user := createTestUser(t, db, "cart-replace@test.local")
	product := createTestProduct(t, db, "cart-replace", 50000, 10)

	detail, err := svc.Replace(user.ID, []CartLineInput{
		{ProductID: product.ID, Quantity: 2},
		{ProductID: 0, Quantity: 3},
		{ProductID: product.ID + 500, Quantity: -1},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(detail.Items))
	}
	if detail.Items[0].ProductID != product.ID || detail.Items[0].Quantity != 2 {
		t.Fatalf("unexpected surviving line: %+v", detail.Items[0])
	}
}
