package repository

import (
	"time"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregates back-office statistics. Read-only, no
// business rules here.
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow is the raw overview aggregate.
type DashboardOverviewRow struct {
	OrdersTotal      int64
	PendingOrders    int64
	ProcessingOrders int64
	ShippingOrders   int64
	DeliveredOrders  int64
	RevenueDelivered float64
	NewUsers         int64
	ActiveProducts   int64
	ReviewsTotal     int64
}

// DashboardOrderTrendRow is one day of order counts.
type DashboardOrderTrendRow struct {
	Day             string
	OrdersTotal     int64
	OrdersDelivered int64
}

// DashboardStockStatsRow is the stock aggregate.
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
	OversoldProducts   int64
}

// DashboardProductRankingRow is one row of the product ranking.
type DashboardProductRankingRow struct {
	ProductID uint
	Name      string
	Orders    int64
	Quantity  int64
	Amount    float64
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates the dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview aggregates headline counters for the period.
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	base := r.db.Model(&models.Order{}).Where("created_at BETWEEN ? AND ?", startAt, endAt)
	if err := base.Session(&gorm.Session{}).Count(&row.OrdersTotal).Error; err != nil {
		return row, err
	}

	statusCounts := []struct {
		status string
		target *int64
	}{
		{constants.OrderStatusPending, &row.PendingOrders},
		{constants.OrderStatusProcessing, &row.ProcessingOrders},
		{constants.OrderStatusShipping, &row.ShippingOrders},
		{constants.OrderStatusDelivered, &row.DeliveredOrders},
	}
	for _, sc := range statusCounts {
		err := r.db.Model(&models.Order{}).
			Where("created_at BETWEEN ? AND ? AND status = ?", startAt, endAt, sc.status).
			Count(sc.target).Error
		if err != nil {
			return row, err
		}
	}

	err := r.db.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ? AND status = ?", startAt, endAt, constants.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&row.RevenueDelivered).Error
	if err != nil {
		return row, err
	}

	err = r.db.Model(&models.User{}).
		Where("created_at BETWEEN ? AND ?", startAt, endAt).
		Count(&row.NewUsers).Error
	if err != nil {
		return row, err
	}

	err = r.db.Model(&models.Product{}).
		Where("status = ?", constants.ProductStatusAvailable).
		Count(&row.ActiveProducts).Error
	if err != nil {
		return row, err
	}

	err = r.db.Model(&models.Review{}).
		Where("created_at BETWEEN ? AND ?", startAt, endAt).
		Count(&row.ReviewsTotal).Error
	if err != nil {
		return row, err
	}

	return row, nil
}

// GetOrderTrends returns per-day order counts for the period.
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	var rows []DashboardOrderTrendRow
	dayExpr := dayBucketExpr(r.db, "created_at")
	err := r.db.Model(&models.Order{}).
		Select(dayExpr+" as day, COUNT(*) as orders_total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) as orders_delivered", constants.OrderStatusDelivered).
		Where("created_at BETWEEN ? AND ?", startAt, endAt).
		Group("day").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStockStats returns out-of-stock, low-stock and oversold counts.
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	var row DashboardStockStatsRow
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}

	if err := r.db.Model(&models.Product{}).Where("stock = 0").Count(&row.OutOfStockProducts).Error; err != nil {
		return row, err
	}
	err := r.db.Model(&models.Product{}).
		Where("stock > 0 AND stock <= ?", lowStockThreshold).
		Count(&row.LowStockProducts).Error
	if err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Product{}).Where("stock < 0").Count(&row.OversoldProducts).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetTopProducts ranks products by ordered quantity in the period.
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []DashboardProductRankingRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, order_items.name as name, COUNT(DISTINCT order_items.order_id) as orders, SUM(order_items.quantity) as quantity, SUM(order_items.unit_price * order_items.quantity) as amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at BETWEEN ? AND ?", startAt, endAt).
		Group("order_items.product_id, order_items.name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
