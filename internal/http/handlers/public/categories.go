package public

import (
	"errors"
	"net/http"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all categories sorted for display.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Category list failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory returns one category by slug.
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "Category not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Category fetch failed", err)
		}
		return
	}
	response.Success(c, category)
}

// CategoryProducts returns a category page: its products plus the brand
// links the storefront uses for the filter bar.
func (h *Handler) CategoryProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		BrandSlug:     c.Query("brand"),
		OrderBy:       c.Query("order_by"),
		OnlyAvailable: true,
	}
	category, products, total, brandLinks, err := h.CategoryService.ProductsBySlug(c.Param("slug"), filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "Category not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Category products failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"category":   category,
		"products":   products,
		"brands":     brandLinks,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}
