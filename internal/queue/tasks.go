package queue

import (
	"encoding/json"

	"github.com/techgear-vn/techgear-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies the buyer about a status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderCleanup prunes terminal orders across all users.
	TaskOrderCleanup = constants.TaskOrderCleanup
	// TaskVerificationEmail sends the email verification link.
	TaskVerificationEmail = constants.TaskVerificationEmail
	// TaskResetPasswordEmail sends the password reset link.
	TaskResetPasswordEmail = constants.TaskResetPasswordEmail
)

// OrderStatusEmailPayload is the status notification task payload.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderCleanupPayload is the terminal order cleanup task payload.
type OrderCleanupPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

// VerificationEmailPayload is the account email task payload, shared by
// the verification and reset flows.
type VerificationEmailPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// NewOrderStatusEmailTask builds the status notification task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderCleanupTask builds the terminal order cleanup task.
func NewOrderCleanupTask(payload OrderCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCleanup, body), nil
}

// NewVerificationEmailTask builds the email verification task.
func NewVerificationEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerificationEmail, body), nil
}

// NewResetPasswordEmailTask builds the password reset task.
func NewResetPasswordEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskResetPasswordEmail, body), nil
}
