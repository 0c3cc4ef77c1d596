package public

import (
	"errors"
	"net/http"
	"strconv"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return 0, false
	}
	return uint(id), true
}

// ListProductReviews returns a product's reviews, newest first, with the
// average rating.
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, average, err := h.ReviewService.ListByProduct(productID, page, pageSize)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Review list failed", err)
		return
	}
	response.Success(c, gin.H{
		"reviews":        reviews,
		"average_rating": average,
		"pagination":     response.NewPagination(page, pageSize, total),
	})
}

// ReviewRequest is the review create/edit payload. Rating bounds live here
// in the binding tags; the service stores whatever it is handed.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview adds a review. One review per user per product.
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	review, err := h.ReviewService.Create(service.CreateReviewInput{
		UserID:    uid,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Created(c, review)
}

// UpdateReview edits the caller's own review.
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid review id", nil)
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	review, err := h.ReviewService.Update(service.UpdateReviewInput{
		ReviewID: uint(reviewID),
		UserID:   uid,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview removes the caller's own review.
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, http.StatusBadRequest, "Invalid review id", nil)
		return
	}
	if err := h.ReviewService.Delete(uint(reviewID), uid); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Message(c, "Review deleted")
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyReviewed):
		respondError(c, http.StatusBadRequest, "You have already reviewed this product", nil)
	case errors.Is(err, service.ErrReviewForbidden):
		respondError(c, http.StatusForbidden, "You can only modify your own review", nil)
	case errors.Is(err, service.ErrReviewNotFound):
		respondError(c, http.StatusNotFound, "Review not found", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Review operation failed", err)
	}
}
