package repository

import (
	"errors"

	"github.com/techgear-vn/techgear-api/internal/models"

	"gorm.io/gorm"
)

// BrandRepository is the brand data access interface.
type BrandRepository interface {
	List() ([]models.Brand, error)
	GetByID(id uint) (*models.Brand, error)
	GetBySlug(slug string) (*models.Brand, error)
	SlugInUse(slug string, excludeID uint) (bool, error)
	Create(brand *models.Brand) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormBrandRepository
}

// GormBrandRepository is the GORM implementation.
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates the brand repository.
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormBrandRepository) WithTx(tx *gorm.DB) *GormBrandRepository {
	if tx == nil {
		return r
	}
	return &GormBrandRepository{db: tx}
}

// List returns all brands ordered by sort weight then name.
func (r *GormBrandRepository) List() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("sort_order asc, name asc").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// GetByID fetches a brand by id, nil when absent.
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// GetBySlug fetches a brand by slug, nil when absent.
func (r *GormBrandRepository) GetBySlug(slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// SlugInUse reports whether any brand row, soft-deleted ones included,
// holds the slug. The unique index covers deleted rows too.
func (r *GormBrandRepository) SlugInUse(slug string, excludeID uint) (bool, error) {
	query := r.db.Unscoped().Model(&models.Brand{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a brand.
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update applies field updates.
func (r *GormBrandRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Brand{}).Where("id = ?", id).Updates(updates).Error
}

// Delete soft-deletes a brand.
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}
