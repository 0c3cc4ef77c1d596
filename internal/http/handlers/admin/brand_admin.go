package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandRequest is the brand create/edit payload.
type BrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Logo        string `json:"logo"`
	SortOrder   int    `json:"sort_order"`
	CategoryIDs []uint `json:"category_ids"`
}

// ListBrands returns all brands for the back office.
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.BrandService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Brand list failed", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand creates a brand and its category links.
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	brand, err := h.BrandService.Create(service.BrandInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Logo:        req.Logo,
		SortOrder:   req.SortOrder,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondBrandError(c, err)
		return
	}
	response.Created(c, brand)
}

// UpdateBrand edits a brand and replaces its category links.
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	brand, err := h.BrandService.Update(id, service.BrandInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Logo:        req.Logo,
		SortOrder:   req.SortOrder,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondBrandError(c, err)
		return
	}
	response.Success(c, brand)
}

// DeleteBrand removes a brand and its category links.
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.BrandService.Delete(id); err != nil {
		respondBrandError(c, err)
		return
	}
	response.Message(c, "Brand deleted")
}

func respondBrandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBrandNotFound):
		respondError(c, http.StatusNotFound, "Brand not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, http.StatusBadRequest, "Slug is already in use", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Brand operation failed", err)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
