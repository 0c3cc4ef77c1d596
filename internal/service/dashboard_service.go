package service

import (
	"time"

	"github.com/techgear-vn/techgear-api/internal/repository"
)

const dashboardDefaultRangeDays = 30

// DashboardStats is the back-office overview response.
type DashboardStats struct {
	Overview repository.DashboardOverviewRow        `json:"overview"`
	Trends   []repository.DashboardOrderTrendRow    `json:"trends"`
	Stock    repository.DashboardStockStatsRow      `json:"stock"`
	Top      []repository.DashboardProductRankingRow `json:"top_products"`
}

// DashboardService assembles back-office statistics.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Stats aggregates overview, trends, stock and rankings for the period.
// A non-positive rangeDays falls back to 30.
func (s *DashboardService) Stats(rangeDays int) (*DashboardStats, error) {
	if rangeDays <= 0 {
		rangeDays = dashboardDefaultRangeDays
	}
	endAt := time.Now()
	startAt := endAt.AddDate(0, 0, -rangeDays)

	overview, err := s.dashboardRepo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	trends, err := s.dashboardRepo.GetOrderTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}
	stock, err := s.dashboardRepo.GetStockStats(0)
	if err != nil {
		return nil, err
	}
	top, err := s.dashboardRepo.GetTopProducts(startAt, endAt, 10)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Overview: overview,
		Trends:   trends,
		Stock:    stock,
		Top:      top,
	}, nil
}
