package admin

import (
	"errors"
	"net/http"

	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the category create/edit payload.
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories returns all categories for the back office.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Image:     req.Image,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Image:     req.Image,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Message(c, "Category deleted")
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "Category not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, http.StatusBadRequest, "Slug is already in use", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Category operation failed", err)
	}
}
