package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a product category.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Image     string         `gorm:"type:varchar(500)" json:"image"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}

// BrandCategory links a brand to a category it sells in. The storefront
// uses it to render per-category brand filters.
type BrandCategory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	BrandID    uint      `gorm:"not null;uniqueIndex:idx_brand_category" json:"brand_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_brand_category" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`

	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (BrandCategory) TableName() string {
	return "brand_categories"
}
