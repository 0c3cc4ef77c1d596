package service

import (
	"testing"

	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestReviewCreateOnePerUserPerProduct(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	user := createTestUser(t, db, "review-dup@test.local")
	product := createTestProduct(t, db, "review-dup", 100000, 10)

	if _, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID, Rating: 5, Comment: "Great"}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	_, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID, Rating: 3, Comment: "Changed my mind"})
	if err != ErrAlreadyReviewed {
		t.Fatalf("duplicate review want ErrAlreadyReviewed got %v", err)
	}
}

func TestReviewCreateChecksProductNotRating(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	user := createTestUser(t, db, "review-valid@test.local")
	product := createTestProduct(t, db, "review-valid", 100000, 10)

	if _, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID + 900, Rating: 4}); err != ErrProductNotFound {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}

	// Rating bounds are a request-binding concern. Called directly, the
	// service stores the value verbatim.
	review, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID, Rating: 6})
	if err != nil {
		t.Fatalf("out-of-range rating should pass through the service, got %v", err)
	}
	if review.Rating != 6 {
		t.Fatalf("rating want 6 got %d", review.Rating)
	}
}

func TestReviewRecreateAfterDelete(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	user := createTestUser(t, db, "review-again@test.local")
	product := createTestProduct(t, db, "review-again", 100000, 10)

	first, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID, Rating: 2, Comment: "Meh"})
	if err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if err := svc.Delete(first.ID, user.ID); err != nil {
		t.Fatalf("delete review failed: %v", err)
	}

	second, err := svc.Create(CreateReviewInput{UserID: user.ID, ProductID: product.ID, Rating: 5, Comment: "Grew on me"})
	if err != nil {
		t.Fatalf("re-review after delete should succeed, got %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("re-review should be a fresh row")
	}

	var count int64
	if err := db.Model(&models.Review{}).Where("user_id = ? AND product_id = ?", user.ID, product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count reviews failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 review row after recreate, got %d", count)
	}
}

func TestReviewUpdateOnlyAuthor(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	author := createTestUser(t, db, "review-author@test.local")
	other := createTestUser(t, db, "review-other@test.local")
	product := createTestProduct(t, db, "review-author", 100000, 10)

	review, err := svc.Create(CreateReviewInput{UserID: author.ID, ProductID: product.ID, Rating: 4, Comment: "Solid"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	_, err = svc.Update(UpdateReviewInput{ReviewID: review.ID, UserID: other.ID, Rating: 1, Comment: "Hijacked"})
	if err != ErrReviewForbidden {
		t.Fatalf("non-author update want ErrReviewForbidden got %v", err)
	}

	updated, err := svc.Update(UpdateReviewInput{ReviewID: review.ID, UserID: author.ID, Rating: 5, Comment: "Even better"})
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "Even better" {
		t.Fatalf("unexpected updated review: %+v", updated)
	}
}

func TestReviewDeleteOnlyAuthor(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	author := createTestUser(t, db, "review-del-author@test.local")
	other := createTestUser(t, db, "review-del-other@test.local")
	product := createTestProduct(t, db, "review-delete", 100000, 10)

	review, err := svc.Create(CreateReviewInput{UserID: author.ID, ProductID: product.ID, Rating: 2})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if err := svc.Delete(review.ID, other.ID); err != ErrReviewForbidden {
		t.Fatalf("non-author delete want ErrReviewForbidden got %v", err)
	}
	if err := svc.Delete(review.ID, author.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if err := svc.Delete(review.ID, author.ID); err != ErrReviewNotFound {
		t.Fatalf("second delete want ErrReviewNotFound got %v", err)
	}
}

func TestReviewListAggregatesAverage(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	first := createTestUser(t, db, "review-avg-1@test.local")
	second := createTestUser(t, db, "review-avg-2@test.local")
	product := createTestProduct(t, db, "review-average", 100000, 10)

	if _, err := svc.Create(CreateReviewInput{UserID: first.ID, ProductID: product.ID, Rating: 5}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{UserID: second.ID, ProductID: product.ID, Rating: 2}); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	reviews, total, average, err := svc.ListByProduct(product.ID, 1, 20)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 2 || len(reviews) != 2 {
		t.Fatalf("want 2 reviews got total=%d len=%d", total, len(reviews))
	}
	if average != 3.5 {
		t.Fatalf("average want 3.5 got %v", average)
	}
}
