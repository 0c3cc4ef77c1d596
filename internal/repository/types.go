package repository

import "time"

// ProductListFilter filters the product list query.
type ProductListFilter struct {
	Page          int
	PageSize      int
	BrandID       uint
	CategoryID    uint
	BrandSlug     string
	CategorySlug  string
	Search        string
	Status        string
	OnlyAvailable bool
	MinPrice      *int64
	MaxPrice      *int64
	OrderBy       string
}

// OrderListFilter filters the order list query.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filters the user list query.
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter filters the review list query.
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}
