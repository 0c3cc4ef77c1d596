package service

import (
	"strings"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
)

// BrandInput is the admin create/update payload.
type BrandInput struct {
	Name        string
	Slug        string
	Logo        string
	SortOrder   int
	CategoryIDs []uint
}

// BrandService owns brands and their category links.
type BrandService struct {
	brandRepo         repository.BrandRepository
	brandCategoryRepo repository.BrandCategoryRepository
	productRepo       repository.ProductRepository
}

// NewBrandService creates the brand service.
func NewBrandService(brandRepo repository.BrandRepository, brandCategoryRepo repository.BrandCategoryRepository, productRepo repository.ProductRepository) *BrandService {
	return &BrandService{
		brandRepo:         brandRepo,
		brandCategoryRepo: brandCategoryRepo,
		productRepo:       productRepo,
	}
}

// List returns all brands.
func (s *BrandService) List() ([]models.Brand, error) {
	return s.brandRepo.List()
}

// GetBySlug fetches one brand by slug.
func (s *BrandService) GetBySlug(slug string) (*models.Brand, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrBrandNotFound
	}
	brand, err := s.brandRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

// ProductsBySlug returns the brand's products.
func (s *BrandService) ProductsBySlug(slug string, page, pageSize int) (*models.Brand, []models.Product, int64, error) {
	brand, err := s.GetBySlug(slug)
	if err != nil {
		return nil, nil, 0, err
	}
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		BrandID:  brand.ID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, nil, 0, err
	}
	return brand, products, total, nil
}

// Categories returns the categories a brand is linked to.
func (s *BrandService) Categories(brandID uint) ([]models.BrandCategory, error) {
	return s.brandCategoryRepo.ListByBrand(brandID)
}

// Create adds a brand with its category links.
func (s *BrandService) Create(input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if name == "" || slug == "" {
		return nil, ErrBrandNotFound
	}
	taken, err := s.brandRepo.SlugInUse(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugExists
	}

	brand := &models.Brand{
		Name:      name,
		Slug:      slug,
		Logo:      strings.TrimSpace(input.Logo),
		SortOrder: input.SortOrder,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	if len(input.CategoryIDs) > 0 {
		if err := s.brandCategoryRepo.Replace(brand.ID, input.CategoryIDs); err != nil {
			return nil, err
		}
	}
	return brand, nil
}

// Update edits a brand and rewrites its category links.
func (s *BrandService) Update(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != brand.Slug {
		taken, err := s.brandRepo.SlugInUse(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugExists
		}
	}

	updates := map[string]interface{}{
		"name":       strings.TrimSpace(input.Name),
		"logo":       strings.TrimSpace(input.Logo),
		"sort_order": input.SortOrder,
	}
	if slug != "" {
		updates["slug"] = slug
	}
	if err := s.brandRepo.Update(id, updates); err != nil {
		return nil, err
	}
	if input.CategoryIDs != nil {
		if err := s.brandCategoryRepo.Replace(id, input.CategoryIDs); err != nil {
			return nil, err
		}
	}
	return s.brandRepo.GetByID(id)
}

// Delete removes a brand and its category links.
func (s *BrandService) Delete(id uint) error {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	if err := s.brandCategoryRepo.DeleteByBrand(id); err != nil {
		return err
	}
	return s.brandRepo.Delete(id)
}
