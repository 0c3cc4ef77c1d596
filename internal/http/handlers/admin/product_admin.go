package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest is the product create/edit payload.
type ProductRequest struct {
	Slug        string       `json:"slug" binding:"required"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	Status      string       `json:"status"`
	BrandID     uint         `json:"brand_id"`
	CategoryID  uint         `json:"category_id"`
	Images      []string     `json:"images"`
	Specs       models.JSON  `json:"specs"`
	SortOrder   int          `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Status:      r.Status,
		BrandID:     r.BrandID,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		Specs:       r.Specs,
		SortOrder:   r.SortOrder,
	}
}

// ListProducts returns the catalog for the back office, all statuses.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil && !errors.Is(err, service.ErrProductNotFound) {
		respondError(c, http.StatusInternalServerError, "Product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product for the back office.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct creates a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct edits a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Message(c, "Product deleted")
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, http.StatusBadRequest, "Slug is already in use", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Product operation failed", err)
	}
}
