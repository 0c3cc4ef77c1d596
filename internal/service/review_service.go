package service

import (
	"strings"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
)

// CreateReviewInput is the review creation payload.
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   string
}

// UpdateReviewInput is the review edit payload.
type UpdateReviewInput struct {
	ReviewID uint
	UserID   uint
	Rating   int
	Comment  string
}

// ReviewService owns product reviews.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates the review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// ListByProduct returns a product's reviews with authors, plus the
// aggregate rating.
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int) ([]models.Review, int64, float64, error) {
	if productID == 0 {
		return nil, 0, 0, ErrProductNotFound
	}
	reviews, total, err := s.reviewRepo.ListByProduct(repository.ReviewListFilter{
		ProductID: productID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, 0, 0, err
	}
	average, _, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, total, average, nil
}

// Create adds a review. A user gets one review per product; a second
// attempt fails with ErrAlreadyReviewed.
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrReviewNotFound
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// The unique index backstops a racing duplicate.
		if dup, derr := s.reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID); derr == nil && dup != nil {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

// Update edits a review. Only the author may edit.
func (s *ReviewService) Update(input UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(input.ReviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != input.UserID {
		return nil, ErrReviewForbidden
	}

	updates := map[string]interface{}{
		"rating":  input.Rating,
		"comment": strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Update(review.ID, updates); err != nil {
		return nil, err
	}
	review.Rating = input.Rating
	review.Comment = strings.TrimSpace(input.Comment)
	return review, nil
}

// Delete removes a review. Only the author may delete.
func (s *ReviewService) Delete(reviewID, userID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != userID {
		return ErrReviewForbidden
	}
	return s.reviewRepo.Delete(review.ID)
}
