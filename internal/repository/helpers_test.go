package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/techgear-vn/techgear-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Category{},
		&models.BrandCategory{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock int, status string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:       slug,
		Name:       "Product " + slug,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:      stock,
		Status:     status,
		BrandID:    1,
		CategoryID: 1,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}
