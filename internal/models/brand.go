package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a product manufacturer.
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Logo      string         `gorm:"type:varchar(500)" json:"logo"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

// TableName sets the table name.
func (Brand) TableName() string {
	return "brands"
}
