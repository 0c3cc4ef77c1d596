package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/provider"
	"github.com/techgear-vn/techgear-api/internal/queue"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the queued background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register attaches the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskOrderCleanup, c.handleOrderCleanup)
	mux.HandleFunc(queue.TaskVerificationEmail, c.handleVerificationEmail)
	mux.HandleFunc(queue.TaskResetPasswordEmail, c.handleResetPasswordEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		// The prune paths hard-delete orders, so a stale task is normal.
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_email_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	if strings.TrimSpace(receiverEmail) == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo: order.OrderNo,
		Status:  status,
		Amount:  order.TotalAmount,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_cleanup_skip_order_service_nil")
		return nil
	}
	pruned, err := c.OrderService.PruneTerminal(payload.OlderThanDays)
	if err != nil {
		logger.Warnw("worker_order_cleanup_failed", "older_than_days", payload.OlderThanDays, "error", err)
		return err
	}
	logger.Infow("worker_order_cleanup_done", "older_than_days", payload.OlderThanDays, "pruned", pruned)
	return nil
}

func (c *Consumer) handleVerificationEmail(_ context.Context, task *asynq.Task) error {
	return c.handleAccountEmail(task, "verification", func(payload queue.VerificationEmailPayload) error {
		return c.EmailService.SendVerificationEmail(payload.Email, payload.Token)
	})
}

func (c *Consumer) handleResetPasswordEmail(_ context.Context, task *asynq.Task) error {
	return c.handleAccountEmail(task, "reset_password", func(payload queue.VerificationEmailPayload) error {
		return c.EmailService.SendResetPasswordEmail(payload.Email, payload.Token)
	})
}

func (c *Consumer) handleAccountEmail(task *asynq.Task, kind string, send func(queue.VerificationEmailPayload) error) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.VerificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_account_email_unmarshal_failed", "kind", kind, "error", err)
		return err
	}
	if strings.TrimSpace(payload.Email) == "" || strings.TrimSpace(payload.Token) == "" {
		logger.Debugw("worker_account_email_skip_invalid_payload", "kind", kind, "user_id", payload.UserID)
		return nil
	}
	if err := send(payload); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_account_email_skip_disabled", "kind", kind, "user_id", payload.UserID)
			return nil
		}
		logger.Warnw("worker_account_email_send_failed", "kind", kind, "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}
