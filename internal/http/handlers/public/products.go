package public

import (
	"errors"
	"net/http"
	"strconv"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the storefront catalog page. An empty result is a
// 404, which the storefront renders as its empty state.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		BrandSlug:     c.Query("brand"),
		CategorySlug:  c.Query("category"),
		Search:        c.Query("search"),
		OrderBy:       c.Query("order_by"),
		OnlyAvailable: true,
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "No products found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Product list failed", err)
		}
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product by numeric id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return
	}
	product, err := h.ProductService.GetByID(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Product fetch failed", err)
		}
		return
	}
	response.Success(c, product)
}

// GetProductBySlug returns one product by slug.
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Product fetch failed", err)
		}
		return
	}
	response.Success(c, product)
}

// SearchProducts searches available products by name or description.
func (h *Handler) SearchProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	query := c.Query("q")
	products, total, err := h.ProductService.Search(query, page, pageSize)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// TopRatedProducts returns the cached best-reviewed products.
func (h *Handler) TopRatedProducts(c *gin.Context) {
	products, err := h.ProductService.TopRated(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Top rated fetch failed", err)
		return
	}
	response.Success(c, products)
}
