package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout form payload. Line prices and the
// total come from the storefront and are stored as submitted.
type CreateOrderRequest struct {
	Items          []service.CreateOrderItemInput `json:"items" binding:"required"`
	Total          decimal.Decimal                `json:"total"`
	ShippingMethod string                         `json:"shipping_method"`
	PaymentMethod  string                         `json:"payment_method"`
	RecipientName  string                         `json:"recipient_name" binding:"required"`
	RecipientPhone string                         `json:"recipient_phone" binding:"required"`
	RecipientEmail string                         `json:"recipient_email"`
	Address        string                         `json:"address" binding:"required"`
	Ward           string                         `json:"ward"`
	District       string                         `json:"district"`
	City           string                         `json:"city"`
	Note           string                         `json:"note"`
}

// CreateOrder records a new order and empties the cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		UserID:         uid,
		Items:          req.Items,
		Total:          req.Total,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		RecipientEmail: req.RecipientEmail,
		Address:        req.Address,
		Ward:           req.Ward,
		District:       req.District,
		City:           req.City,
		Note:           req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLineItem):
			respondError(c, http.StatusBadRequest, "Invalid order payload", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Order creation failed", err)
		}
		return
	}
	response.Created(c, order)
}

// ListOrders returns the user's open orders. Terminal orders are pruned
// during the read.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListWithPrune(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Order list failed", err)
		return
	}
	response.Success(c, orders)
}

// GetOrder returns one of the user's orders.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetForUser(uint(orderID), uid)
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

// CancelOrder cancels a PENDING order owned by the user.
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid order id", nil)
		return
	}
	order, err := h.OrderService.Cancel(uint(orderID), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrOrderNotCancellable):
			respondError(c, http.StatusBadRequest, "Order can no longer be cancelled", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Order cancel failed", err)
		}
		return
	}
	response.Success(c, order)
}
