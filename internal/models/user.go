package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds both shoppers and admins; the Role column tells them apart.
type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	Name            string         `gorm:"default:''" json:"name"`
	Image           string         `gorm:"type:varchar(500)" json:"image"`
	Role            string         `gorm:"type:varchar(20);not null;default:'USER';index" json:"role"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	LastLoginAt     *time.Time     `json:"last_login_at"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// VerificationToken is a single-use token for email verification or
// password reset.
type VerificationToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	Purpose   string    `gorm:"type:varchar(30);not null" json:"purpose"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name.
func (VerificationToken) TableName() string {
	return "verification_tokens"
}
