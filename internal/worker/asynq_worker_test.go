package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/techgear-vn/techgear-api/internal/provider"
	"github.com/techgear-vn/techgear-api/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleAccountEmailSkipsBlankPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	payload, _ := json.Marshal(queue.VerificationEmailPayload{Email: "  ", Token: ""})
	task := asynq.NewTask(queue.TaskVerificationEmail, payload)

	called := false
	err := consumer.handleAccountEmail(task, "verification", func(queue.VerificationEmailPayload) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error for blank payload, got %v", err)
	}
	if called {
		t.Fatalf("send should not run for blank payload")
	}
}

func TestHandleAccountEmailRejectsMalformedPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskVerificationEmail, []byte("not-json"))

	err := consumer.handleAccountEmail(task, "verification", func(queue.VerificationEmailPayload) error {
		t.Fatalf("send should not run for malformed payload")
		return nil
	})
	if err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleOrderStatusEmailSkipsZeroOrderID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	payload, _ := json.Marshal(queue.OrderStatusEmailPayload{OrderID: 0})
	task := asynq.NewTask(queue.TaskOrderStatusEmail, payload)

	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected nil error for zero order id, got %v", err)
	}
}

func TestHandleOrderCleanupWithoutOrderService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	payload, _ := json.Marshal(queue.OrderCleanupPayload{OlderThanDays: 7})
	task := asynq.NewTask(queue.TaskOrderCleanup, payload)

	if err := consumer.handleOrderCleanup(context.Background(), task); err != nil {
		t.Fatalf("expected nil error without order service, got %v", err)
	}
}
