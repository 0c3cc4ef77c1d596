package service

import (
	"strings"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
)

// CategoryInput is the admin create/update payload.
type CategoryInput struct {
	Name      string
	Slug      string
	Image     string
	SortOrder int
}

// CategoryService owns categories.
type CategoryService struct {
	categoryRepo      repository.CategoryRepository
	brandCategoryRepo repository.BrandCategoryRepository
	productRepo       repository.ProductRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, brandCategoryRepo repository.BrandCategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo:      categoryRepo,
		brandCategoryRepo: brandCategoryRepo,
		productRepo:       productRepo,
	}
}

// List returns all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetBySlug fetches one category by slug.
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ProductsBySlug returns the category's products plus the brands selling
// in it, for the storefront filter bar.
func (s *CategoryService) ProductsBySlug(slug string, filter repository.ProductListFilter) (*models.Category, []models.Product, int64, []models.BrandCategory, error) {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	filter.CategoryID = category.ID
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	brands, err := s.brandCategoryRepo.ListByCategory(category.ID)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	return category, products, total, brands, nil
}

// Create adds a category.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if name == "" || slug == "" {
		return nil, ErrCategoryNotFound
	}
	taken, err := s.categoryRepo.SlugInUse(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugExists
	}

	category := &models.Category{
		Name:      name,
		Slug:      slug,
		Image:     strings.TrimSpace(input.Image),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != category.Slug {
		taken, err := s.categoryRepo.SlugInUse(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugExists
		}
	}

	updates := map[string]interface{}{
		"name":       strings.TrimSpace(input.Name),
		"image":      strings.TrimSpace(input.Image),
		"sort_order": input.SortOrder,
	}
	if slug != "" {
		updates["slug"] = slug
	}
	if err := s.categoryRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(id)
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}
