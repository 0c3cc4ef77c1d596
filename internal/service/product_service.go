package service

import (
	"context"
	"strings"
	"time"

	"github.com/techgear-vn/techgear-api/internal/cache"
	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
)

const (
	topRatedCacheKey = "products:top_rated"
	topRatedCacheTTL = 5 * time.Minute
	topRatedLimit    = 10
)

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Slug        string
	Name        string
	Description string
	Price       models.Money
	Stock       int
	Status      string
	BrandID     uint
	CategoryID  uint
	Images      []string
	Specs       models.JSON
	SortOrder   int
}

// ProductService owns the catalog.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns products matching the filter. An empty result is reported
// as not found, which the storefront relies on to render its empty state.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if len(products) == 0 {
		return nil, 0, ErrProductNotFound
	}
	return products, total, nil
}

// GetByID fetches one product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySlug fetches one product by slug.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Search finds available products whose name or description contains the
// query.
func (s *ProductService) Search(query string, page, pageSize int) ([]models.Product, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, 0, nil
	}
	return s.productRepo.List(repository.ProductListFilter{
		Search:        query,
		OnlyAvailable: true,
		Page:          page,
		PageSize:      pageSize,
	})
}

// TopRated returns the highest rated available products, cached briefly.
func (s *ProductService) TopRated(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	hit, err := cache.GetJSON(ctx, topRatedCacheKey, &cached)
	if err != nil {
		logger.Warnw("top_rated_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.productRepo.TopRated(topRatedLimit)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, topRatedCacheKey, products, topRatedCacheTTL); err != nil {
		logger.Warnw("top_rated_cache_write_failed", "error", err)
	}
	return products, nil
}

// Create adds a product from the back office.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" {
		return nil, ErrProductNotFound
	}
	taken, err := s.productRepo.SlugInUse(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugExists
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProductStatusAvailable
	}
	product := &models.Product{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      status,
		BrandID:     input.BrandID,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
		SpecsJSON:   input.Specs,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateTopRated()
	return product, nil
}

// Update edits a product from the back office.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != product.Slug {
		taken, err := s.productRepo.SlugInUse(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugExists
		}
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(input.Name),
		"description": input.Description,
		"price":       input.Price,
		"stock":       input.Stock,
		"brand_id":    input.BrandID,
		"category_id": input.CategoryID,
		"images":      models.StringArray(input.Images),
		"specs_json":  input.Specs,
		"sort_order":  input.SortOrder,
	}
	if slug != "" {
		updates["slug"] = slug
	}
	if status := strings.TrimSpace(input.Status); status != "" {
		updates["status"] = status
	}
	if err := s.productRepo.Update(id, updates); err != nil {
		return nil, err
	}
	s.invalidateTopRated()
	return s.productRepo.GetByID(id)
}

// Delete removes a product from the back office.
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateTopRated()
	return nil
}

func (s *ProductService) invalidateTopRated() {
	if err := cache.Del(context.Background(), topRatedCacheKey); err != nil {
		logger.Warnw("top_rated_cache_invalidate_failed", "error", err)
	}
}
