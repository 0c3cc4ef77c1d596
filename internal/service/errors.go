package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("token invalid or expired")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrTooManyAttempts    = errors.New("too many attempts")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrSlugExists          = errors.New("slug already exists")
	ErrBrandNotFound       = errors.New("brand not found")
	ErrCategoryNotFound    = errors.New("category not found")

	ErrInvalidCartItem = errors.New("invalid cart item")

	ErrInvalidLineItem     = errors.New("invalid order line item")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	ErrUnknownOrderStatus  = errors.New("unknown order status")

	ErrReviewNotFound   = errors.New("review not found")
	ErrAlreadyReviewed  = errors.New("product already reviewed")
	ErrReviewForbidden  = errors.New("not the review author")
	ErrCheckoutDisabled = errors.New("online payment not configured")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
