package constants

// Order status values. There is no enforced transition graph: the admin
// endpoint accepts any known status (see OrderService.UpdateStatus).
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipping   = "SHIPPING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusSuccess    = "SUCCESS"
)

// Terminal statuses are pruned from a user's order list on read.
var TerminalOrderStatuses = []string{OrderStatusCancelled, OrderStatusSuccess}

// IsKnownOrderStatus reports whether s is one of the defined statuses.
func IsKnownOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipping,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusSuccess:
		return true
	}
	return false
}

// IsTerminalOrderStatus reports whether s is CANCELLED or SUCCESS.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusCancelled || s == OrderStatusSuccess
}

// Shipping methods
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// Payment methods
const (
	PaymentMethodStripe = "stripe"
	PaymentMethodCOD    = "cod"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Product status values
const (
	ProductStatusAvailable   = "AVAILABLE"
	ProductStatusUnavailable = "UNAVAILABLE"
)

// Verification token purposes
const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposeResetPassword = "reset_password"
)

// Asynq task type names
const (
	TaskOrderStatusEmail   = "order:status_email"
	TaskOrderCleanup       = "order:cleanup_terminal"
	TaskVerificationEmail  = "user:verification_email"
	TaskResetPasswordEmail = "user:reset_password_email"
)

// QueueDefault is the asynq queue all tasks are enqueued on.
const QueueDefault = "default"

// Captcha scenes
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)
