package repository

import (
	"github.com/techgear-vn/techgear-api/internal/models"

	"gorm.io/gorm"
)

// BrandCategoryRepository manages brand-to-category links.
type BrandCategoryRepository interface {
	ListByCategory(categoryID uint) ([]models.BrandCategory, error)
	ListByBrand(brandID uint) ([]models.BrandCategory, error)
	Replace(brandID uint, categoryIDs []uint) error
	DeleteByBrand(brandID uint) error
	WithTx(tx *gorm.DB) *GormBrandCategoryRepository
}

// GormBrandCategoryRepository is the GORM implementation.
type GormBrandCategoryRepository struct {
	db *gorm.DB
}

// NewBrandCategoryRepository creates the brand-category repository.
func NewBrandCategoryRepository(db *gorm.DB) *GormBrandCategoryRepository {
	return &GormBrandCategoryRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormBrandCategoryRepository) WithTx(tx *gorm.DB) *GormBrandCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormBrandCategoryRepository{db: tx}
}

// ListByCategory returns links for a category with brands preloaded.
func (r *GormBrandCategoryRepository) ListByCategory(categoryID uint) ([]models.BrandCategory, error) {
	var links []models.BrandCategory
	if err := r.db.Preload("Brand").Where("category_id = ?", categoryID).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ListByBrand returns links for a brand with categories preloaded.
func (r *GormBrandCategoryRepository) ListByBrand(brandID uint) ([]models.BrandCategory, error) {
	var links []models.BrandCategory
	if err := r.db.Preload("Category").Where("brand_id = ?", brandID).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Replace rewrites a brand's category links in one transaction.
func (r *GormBrandCategoryRepository) Replace(brandID uint, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_id = ?", brandID).Delete(&models.BrandCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]models.BrandCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, models.BrandCategory{BrandID: brandID, CategoryID: categoryID})
		}
		return tx.Create(&links).Error
	})
}

// DeleteByBrand removes all links for a brand.
func (r *GormBrandCategoryRepository) DeleteByBrand(brandID uint) error {
	return r.db.Where("brand_id = ?", brandID).Delete(&models.BrandCategory{}).Error
}
