package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncCartRequest is the whole-cart sync payload.
type SyncCartRequest struct {
	Items []service.CartLineInput `json:"items"`
}

// SyncCart replaces the server cart with the submitted lines. The client
// store is the source of truth; whichever sync lands last wins.
func (h *Handler) SyncCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SyncCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cart, err := h.CartService.Replace(uid, req.Items)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// GetCart returns the server cart with product data and the total.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// CartItemRequest is a single-line cart mutation.
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem adds a product line, accumulating onto an existing line.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cart, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem sets a line's quantity verbatim.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cart, err := h.CartService.UpdateQuantity(uid, uint(productID), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem removes one product line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	cart, err := h.CartService.RemoveItem(uid, uint(productID))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Message(c, "Cart cleared")
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCartItem):
		respondError(c, http.StatusBadRequest, "Invalid cart item", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Cart operation failed", err)
	}
}
