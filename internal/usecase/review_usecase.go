package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateReviewInput defines the data required to post a review.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// ReviewUsecase defines the interface for review operations.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, caller Caller, input CreateReviewInput) (*entity.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
