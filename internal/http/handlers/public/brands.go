package public

import (
	"errors"
	"net/http"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBrands returns all brands sorted for display.
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.BrandService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Brand list failed", err)
		return
	}
	response.Success(c, brands)
}

// GetBrand returns one brand with its category links.
func (h *Handler) GetBrand(c *gin.Context) {
	brand, err := h.BrandService.GetBySlug(c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, http.StatusNotFound, "Brand not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Brand fetch failed", err)
		}
		return
	}
	categories, err := h.BrandService.Categories(brand.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Brand fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"brand":      brand,
		"categories": categories,
	})
}

// BrandProducts returns the products of a brand.
func (h *Handler) BrandProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	brand, products, total, err := h.BrandService.ProductsBySlug(c.Param("slug"), page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			respondError(c, http.StatusNotFound, "Brand not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Brand products failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"brand":      brand,
		"products":   products,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}
