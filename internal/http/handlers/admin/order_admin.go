package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/queue"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

func parseOrderFilter(c *gin.Context) repository.OrderListFilter {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	}
	if raw := c.Query("user_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(v)
		}
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.CreatedTo = &t
		}
	}
	return filter
}

// ListOrders returns orders matching the filter for the back office.
func (h *Handler) ListOrders(c *gin.Context) {
	filter := parseOrderFilter(c)
	orders, total, err := h.OrderService.ListForAdmin(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetOrder returns one order for the back office.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Order fetch failed", err)
		}
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest sets an order status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus sets an order's status. First entry into SHIPPING or
// DELIVERED decrements the stock of every line's product.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrUnknownOrderStatus):
			respondError(c, http.StatusBadRequest, "Unknown order status", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Status update failed", err)
		}
		return
	}
	response.Success(c, order)
}

// ExportOrders streams the filtered orders as an Excel workbook.
func (h *Handler) ExportOrders(c *gin.Context) {
	filter := parseOrderFilter(c)
	file, err := h.OrderService.ExportForAdmin(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Order export failed", err)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := file.Write(c.Writer); err != nil {
		handlershared.RequestLog(c).Errorw("order_export_write_failed", "error", err)
	}
}

// CleanupOrdersRequest schedules terminal-order deletion.
type CleanupOrdersRequest struct {
	OlderThanDays int `json:"older_than_days"`
}

// CleanupOrders removes old terminal orders. With a worker attached the
// job goes through the queue; otherwise it runs inline.
func (h *Handler) CleanupOrders(c *gin.Context) {
	var req CleanupOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.OlderThanDays < 0 {
		respondError(c, http.StatusBadRequest, "Invalid retention window", nil)
		return
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		payload := queue.OrderCleanupPayload{OlderThanDays: req.OlderThanDays}
		if err := h.QueueClient.EnqueueOrderCleanup(payload); err != nil {
			respondError(c, http.StatusInternalServerError, "Cleanup scheduling failed", err)
			return
		}
		response.Message(c, "Cleanup scheduled")
		return
	}

	pruned, err := h.OrderService.PruneTerminal(req.OlderThanDays)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Cleanup failed", err)
		return
	}
	response.Success(c, gin.H{"pruned": pruned})
}
