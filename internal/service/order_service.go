package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/queue"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateOrderItemInput is one submitted order line. Name, image and unit
// price are snapshots taken from the storefront payload.
type CreateOrderItemInput struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CreateOrderInput is the order creation payload.
type CreateOrderInput struct {
	UserID         uint
	Items          []CreateOrderItemInput
	Total          decimal.Decimal
	ShippingMethod string
	PaymentMethod  string
	RecipientName  string
	RecipientPhone string
	RecipientEmail string
	Address        string
	Ward           string
	District       string
	City           string
	Note           string
}

// OrderService owns the order lifecycle.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// Create records an order from the storefront payload. The submitted total
// is stored as-is and never recomputed against line prices. On success the
// user's cart is emptied.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidLineItem
	}
	if strings.TrimSpace(input.RecipientName) == "" ||
		strings.TrimSpace(input.RecipientPhone) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return nil, ErrInvalidLineItem
	}

	shippingMethod := strings.TrimSpace(input.ShippingMethod)
	if shippingMethod == "" {
		shippingMethod = constants.ShippingMethodStandard
	}
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCOD
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, ErrInvalidLineItem
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			UnitPrice: models.NewMoneyFromDecimal(line.UnitPrice),
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		TotalAmount:    models.NewMoneyFromDecimal(input.Total),
		ShippingMethod: shippingMethod,
		PaymentMethod:  paymentMethod,
		RecipientName:  strings.TrimSpace(input.RecipientName),
		RecipientPhone: strings.TrimSpace(input.RecipientPhone),
		RecipientEmail: strings.TrimSpace(input.RecipientEmail),
		Address:        strings.TrimSpace(input.Address),
		Ward:           strings.TrimSpace(input.Ward),
		District:       strings.TrimSpace(input.District),
		City:           strings.TrimSpace(input.City),
		Note:           strings.TrimSpace(input.Note),
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearByUser(input.UserID); err != nil {
		logger.Warnw("order_cart_clear_failed", "order_id", order.ID, "user_id", input.UserID, "error", err)
	}

	return s.orderRepo.GetByID(order.ID)
}

// ListWithPrune returns the user's open orders. Terminal orders are
// hard-deleted during the read, so a cancelled order shows up at most once
// before it disappears for good.
func (s *OrderService) ListWithPrune(userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrOrderNotFound
	}

	terminal, err := s.orderRepo.ListByUserAndStatuses(userID, constants.TerminalOrderStatuses)
	if err != nil {
		return nil, err
	}
	// Best effort, order by order. A delete failure is logged and skipped
	// so the read still answers.
	pruned := 0
	for _, order := range terminal {
		if err := s.orderRepo.DeleteWithItems([]uint{order.ID}); err != nil {
			logger.Warnw("terminal_order_prune_failed", "user_id", userID, "order_id", order.ID, "error", err)
			continue
		}
		pruned++
	}
	if pruned > 0 {
		logger.Infow("terminal_orders_pruned_on_read", "user_id", userID, "count", pruned)
	}

	orders, _, err := s.orderRepo.ListByUser(repository.OrderListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	// A terminal order that survived its delete still stays out of the
	// response.
	open := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if isTerminalOrderStatus(order.Status) {
			continue
		}
		open = append(open, order)
	}
	return open, nil
}

func isTerminalOrderStatus(status string) bool {
	for _, s := range constants.TerminalOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GetForUser fetches an order owned by the user.
func (s *OrderService) GetForUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel cancels the user's order. Only PENDING orders can be cancelled;
// a second cancel fails because the first one left PENDING.
func (s *OrderService) Cancel(orderID, userID uint) (*models.Order, error) {
	order, err := s.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCancelled
	s.enqueueStatusEmail(order.ID, constants.OrderStatusCancelled)
	return order, nil
}

// UpdateStatus sets an order's status from the back office. Any known
// status is accepted, there is no transition graph. Stock is decremented
// when the order first moves into SHIPPING or DELIVERED.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !constants.IsKnownOrderStatus(status) {
		return nil, ErrUnknownOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if shouldDecrementStock(order.Status, status) {
		for _, item := range order.Items {
			if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.enqueueStatusEmail(order.ID, status)
	return order, nil
}

// shouldDecrementStock reports whether the move from oldStatus to
// newStatus is the first entry into a fulfillment status. Once an order
// has reached SHIPPING or DELIVERED, bouncing between them does not
// decrement again.
func shouldDecrementStock(oldStatus, newStatus string) bool {
	fulfilled := func(s string) bool {
		return s == constants.OrderStatusShipping || s == constants.OrderStatusDelivered
	}
	return fulfilled(newStatus) && !fulfilled(oldStatus)
}

// ListForAdmin returns orders matching the filter for the back office.
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetByID fetches any order for the back office.
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// PruneTerminal hard-deletes terminal orders older than the given number
// of days, across all users. Runs from the cleanup task.
func (s *OrderService) PruneTerminal(olderThanDays int) (int, error) {
	ids, err := s.orderRepo.ListIDsByStatuses(constants.TerminalOrderStatuses, olderThanDays)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.orderRepo.DeleteWithItems(ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	payload := queue.OrderStatusEmailPayload{OrderID: orderID, Status: status}
	if err := s.queueClient.EnqueueOrderStatusEmail(payload); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("TG%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
