package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order. TotalAmount is recorded exactly as submitted by
// the storefront at creation time and never recomputed.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         string         `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	ShippingMethod string         `gorm:"type:varchar(20);not null;default:'standard'" json:"shipping_method"`
	PaymentMethod  string         `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method"`
	RecipientName  string         `gorm:"not null" json:"recipient_name"`
	RecipientPhone string         `gorm:"type:varchar(30);not null" json:"recipient_phone"`
	RecipientEmail string         `gorm:"type:varchar(200)" json:"recipient_email"`
	Address        string         `gorm:"not null" json:"address"`
	Ward           string         `gorm:"type:varchar(100)" json:"ward"`
	District       string         `gorm:"type:varchar(100)" json:"district"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	Note           string         `gorm:"type:text" json:"note"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
