package public

import (
	"errors"
	"net/http"

	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest asks for a hosted card payment session.
type CheckoutRequest struct {
	OrderRef       string                      `json:"order_ref"`
	Items          []service.CheckoutItemInput `json:"items" binding:"required"`
	ShippingMethod string                      `json:"shipping_method"`
}

// CreateCheckoutSession opens a hosted card payment session for the
// submitted lines. Cash on delivery skips this and goes straight to order
// creation.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.CheckoutService.CreateSession(c.Request.Context(), service.CreateSessionInput{
		UserID:         uid,
		OrderRef:       req.OrderRef,
		Items:          req.Items,
		ShippingMethod: req.ShippingMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutDisabled):
			respondError(c, http.StatusBadRequest, "Card payments are not available", nil)
		case errors.Is(err, service.ErrInvalidLineItem):
			respondError(c, http.StatusBadRequest, "Invalid checkout items", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Checkout session failed", err)
		}
		return
	}
	response.Success(c, session)
}
