package repository

import (
	"testing"
	"time"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedDashboardOrder(t *testing.T, db *gorm.DB, orderNo, status string, total int64, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        orderNo,
		UserID:         1,
		Status:         status,
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		RecipientName:  "Buyer",
		RecipientPhone: "0900000000",
		Address:        "1 Test Street",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			t.Fatalf("seed order items failed: %v", err)
		}
	}
	return order
}

func TestDashboardGetOverview(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	seedProduct(t, db, "dash-active", 100000, 10, constants.ProductStatusAvailable)
	seedProduct(t, db, "dash-hidden", 100000, 10, constants.ProductStatusUnavailable)

	seedDashboardOrder(t, db, "TG-DASH-1", constants.OrderStatusPending, 100000, nil)
	seedDashboardOrder(t, db, "TG-DASH-2", constants.OrderStatusDelivered, 250000, nil)
	seedDashboardOrder(t, db, "TG-DASH-3", constants.OrderStatusDelivered, 150000, nil)

	startAt := time.Now().Add(-24 * time.Hour)
	endAt := time.Now().Add(time.Hour)
	row, err := repo.GetOverview(startAt, endAt)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if row.OrdersTotal != 3 {
		t.Fatalf("orders total want 3 got %d", row.OrdersTotal)
	}
	if row.PendingOrders != 1 {
		t.Fatalf("pending orders want 1 got %d", row.PendingOrders)
	}
	if row.DeliveredOrders != 2 {
		t.Fatalf("delivered orders want 2 got %d", row.DeliveredOrders)
	}
	if row.RevenueDelivered != 400000 {
		t.Fatalf("delivered revenue want 400000 got %v", row.RevenueDelivered)
	}
	if row.ActiveProducts != 1 {
		t.Fatalf("active products want 1 got %d", row.ActiveProducts)
	}
}

func TestDashboardGetStockStats(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	seedProduct(t, db, "stock-out", 100000, 0, constants.ProductStatusAvailable)
	seedProduct(t, db, "stock-low", 100000, 3, constants.ProductStatusAvailable)
	seedProduct(t, db, "stock-ok", 100000, 50, constants.ProductStatusAvailable)
	seedProduct(t, db, "stock-oversold", 100000, -2, constants.ProductStatusAvailable)

	row, err := repo.GetStockStats(5)
	if err != nil {
		t.Fatalf("get stock stats failed: %v", err)
	}
	if row.OutOfStockProducts != 1 {
		t.Fatalf("out of stock want 1 got %d", row.OutOfStockProducts)
	}
	if row.LowStockProducts != 1 {
		t.Fatalf("low stock want 1 got %d", row.LowStockProducts)
	}
	if row.OversoldProducts != 1 {
		t.Fatalf("oversold want 1 got %d", row.OversoldProducts)
	}
}

func TestDashboardGetTopProducts(t *testing.T) {
	db := newRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	keyboard := seedProduct(t, db, "top-keyboard", 1290000, 10, constants.ProductStatusAvailable)
	mouse := seedProduct(t, db, "top-mouse", 590000, 10, constants.ProductStatusAvailable)

	seedDashboardOrder(t, db, "TG-TOP-1", constants.OrderStatusDelivered, 0, []models.OrderItem{
		{ProductID: keyboard.ID, Name: keyboard.Name, UnitPrice: keyboard.Price, Quantity: 1},
		{ProductID: mouse.ID, Name: mouse.Name, UnitPrice: mouse.Price, Quantity: 3},
	})
	seedDashboardOrder(t, db, "TG-TOP-2", constants.OrderStatusPending, 0, []models.OrderItem{
		{ProductID: mouse.ID, Name: mouse.Name, UnitPrice: mouse.Price, Quantity: 2},
	})

	startAt := time.Now().Add(-24 * time.Hour)
	endAt := time.Now().Add(time.Hour)
	rows, err := repo.GetTopProducts(startAt, endAt, 10)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ranking rows want 2 got %d", len(rows))
	}
	if rows[0].ProductID != mouse.ID || rows[0].Quantity != 5 {
		t.Fatalf("top product want mouse qty 5 got %+v", rows[0])
	}
	if rows[0].Orders != 2 {
		t.Fatalf("top product orders want 2 got %d", rows[0].Orders)
	}
}
