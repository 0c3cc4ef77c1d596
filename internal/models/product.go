package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a storefront product.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null;index" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	// Stock may go negative; shipping an order decrements without a floor
	// check so oversold quantities stay visible to the back office.
	Stock      int            `gorm:"not null;default:0" json:"stock"`
	Status     string         `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`
	BrandID    uint           `gorm:"not null;index" json:"brand_id"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	Images     StringArray    `gorm:"type:json" json:"images"`
	SpecsJSON  JSON           `gorm:"type:json" json:"specs"`
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
