package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a product line snapshot inside an order.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"index;not null" json:"order_id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	Name      string         `gorm:"not null" json:"name"`
	Image     string         `gorm:"type:varchar(500)" json:"image"`
	UnitPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
