package service

import (
	"errors"
	"testing"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
	return svc, db
}

func createTestOrder(t *testing.T, svc *OrderService, userID uint, product *models.Product, quantity int) *models.Order {
	t.Helper()
	order, err := svc.Create(CreateOrderInput{
		UserID: userID,
		Items: []CreateOrderItemInput{
			{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price.Decimal,
				Quantity:  quantity,
			},
		},
		Total:          product.Price.Decimal.Mul(decimal.NewFromInt(int64(quantity))),
		RecipientName:  "Nguyen Van A",
		RecipientPhone: "0900000000",
		Address:        "1 Test Street",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateKeepsSubmittedTotal(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-total@test.local")
	product := createTestProduct(t, db, "order-total", 100000, 10)

	submitted := decimal.NewFromInt(999)
	order, err := svc.Create(CreateOrderInput{
		UserID: user.ID,
		Items: []CreateOrderItemInput{
			{ProductID: product.ID, Name: product.Name, UnitPrice: product.Price.Decimal, Quantity: 2},
		},
		Total:          submitted,
		RecipientName:  "Nguyen Van A",
		RecipientPhone: "0900000000",
		Address:        "1 Test Street",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.TotalAmount.Decimal.Equal(submitted) {
		t.Fatalf("total want %s got %s", submitted, order.TotalAmount.Decimal)
	}
}

func TestOrderCreateClearsCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-cart@test.local")
	product := createTestProduct(t, db, "order-cart", 100000, 10)

	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	if _, err := cartSvc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}

	createTestOrder(t, svc, user.ID, product, 2)

	detail, err := cartSvc.Get(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("cart items want 0 got %d", len(detail.Items))
	}
}

func TestOrderCreateRejectsInvalidPayload(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-invalid@test.local")
	product := createTestProduct(t, db, "order-invalid", 100000, 10)

	_, err := svc.Create(CreateOrderInput{UserID: user.ID})
	if err != ErrInvalidLineItem {
		t.Fatalf("empty items want ErrInvalidLineItem got %v", err)
	}

	_, err = svc.Create(CreateOrderInput{
		UserID: user.ID,
		Items: []CreateOrderItemInput{
			{ProductID: product.ID, UnitPrice: product.Price.Decimal, Quantity: 1},
		},
		RecipientName:  "Nguyen Van A",
		RecipientPhone: "",
		Address:        "1 Test Street",
	})
	if err != ErrInvalidLineItem {
		t.Fatalf("missing phone want ErrInvalidLineItem got %v", err)
	}
}

func TestOrderListWithPruneDeletesTerminal(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-prune@test.local")
	product := createTestProduct(t, db, "order-prune", 100000, 10)

	cancelled := createTestOrder(t, svc, user.ID, product, 1)
	open := createTestOrder(t, svc, user.ID, product, 2)
	if _, err := svc.Cancel(cancelled.ID, user.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	orders, err := svc.ListWithPrune(user.ID)
	if err != nil {
		t.Fatalf("list with prune failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != open.ID {
		t.Fatalf("expected only the open order, got %+v", orders)
	}

	var count int64
	if err := db.Unscoped().Model(&models.Order{}).Where("id = ?", cancelled.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cancelled order should be hard-deleted, found %d rows", count)
	}
	if err := db.Unscoped().Model(&models.OrderItem{}).Where("order_id = ?", cancelled.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cancelled order items should be hard-deleted, found %d rows", count)
	}
}

// pruneFailOrderRepo refuses to delete one specific order, standing in for
// a row held by a concurrent transaction.
type pruneFailOrderRepo struct {
	*repository.GormOrderRepository
	failID uint
}

func (r *pruneFailOrderRepo) DeleteWithItems(ids []uint) error {
	for _, id := range ids {
		if id == r.failID {
			return errors.New("database table is locked")
		}
	}
	return r.GormOrderRepository.DeleteWithItems(ids)
}

func TestOrderListWithPruneContinuesPastDeleteFailure(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-prune-fail@test.local")
	product := createTestProduct(t, db, "order-prune-fail", 100000, 10)

	stuck := createTestOrder(t, svc, user.ID, product, 1)
	prunable := createTestOrder(t, svc, user.ID, product, 1)
	open := createTestOrder(t, svc, user.ID, product, 2)
	if _, err := svc.Cancel(stuck.ID, user.ID); err != nil {
		t.Fatalf("cancel stuck failed: %v", err)
	}
	if _, err := svc.Cancel(prunable.ID, user.ID); err != nil {
		t.Fatalf("cancel prunable failed: %v", err)
	}

	failing := NewOrderService(
		&pruneFailOrderRepo{GormOrderRepository: repository.NewOrderRepository(db), failID: stuck.ID},
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)

	orders, err := failing.ListWithPrune(user.ID)
	if err != nil {
		t.Fatalf("list should survive a per-order delete failure, got %v", err)
	}
	if len(orders) != 1 || orders[0].ID != open.ID {
		t.Fatalf("expected only the open order, got %+v", orders)
	}

	var count int64
	if err := db.Unscoped().Model(&models.Order{}).Where("id = ?", prunable.ID).Count(&count).Error; err != nil {
		t.Fatalf("count prunable failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("prunable order should still be deleted, found %d rows", count)
	}
	if err := db.Unscoped().Model(&models.Order{}).Where("id = ?", stuck.ID).Count(&count).Error; err != nil {
		t.Fatalf("count stuck failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("stuck order should survive the failed delete, found %d rows", count)
	}
}

func TestOrderCancelOnlyPending(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-cancel@test.local")
	product := createTestProduct(t, db, "order-cancel", 100000, 10)

	order := createTestOrder(t, svc, user.ID, product, 1)
	updated, err := svc.Cancel(order.ID, user.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", updated.Status)
	}

	if _, err := svc.Cancel(order.ID, user.ID); err != ErrOrderNotCancellable {
		t.Fatalf("second cancel want ErrOrderNotCancellable got %v", err)
	}
}

func TestOrderUpdateStatusDecrementsStockOnce(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-stock@test.local")
	product := createTestProduct(t, db, "order-stock", 100000, 10)

	order := createTestOrder(t, svc, user.ID, product, 3)

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("update to delivered failed: %v", err)
	}
	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if got.Stock != 7 {
		t.Fatalf("stock want 7 got %d", got.Stock)
	}

	// Moving between fulfillment statuses must not decrement again.
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusShipping); err != nil {
		t.Fatalf("update to shipping failed: %v", err)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 7 {
		t.Fatalf("stock want 7 after second update got %d", got.Stock)
	}
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createTestUser(t, db, "order-unknown@test.local")
	product := createTestProduct(t, db, "order-unknown", 100000, 10)

	order := createTestOrder(t, svc, user.ID, product, 1)
	if _, err := svc.UpdateStatus(order.ID, "TELEPORTED"); err != ErrUnknownOrderStatus {
		t.Fatalf("want ErrUnknownOrderStatus got %v", err)
	}
}
