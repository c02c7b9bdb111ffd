package repository

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository defines operations over product reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByProduct retrieves a product's reviews with customers loaded, newest first.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// FindRecent retrieves the most recent reviews platform-wide, capped at limit.
	FindRecent(ctx context.Context, limit int) ([]*entity.Review, error)

	// FindRecentBySeller retrieves the seller's most recent reviews, capped at limit.
	FindRecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.Review, error)

	// CountAll returns the total number of reviews.
	CountAll(ctx context.Context) (int64, error)

	// CountBySeller returns how many reviews target the seller's products.
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// AverageRatingBySeller returns the mean rating across the seller's
	// products, 0 when the seller has no reviews.
	AverageRatingBySeller(ctx context.Context, sellerID uuid.UUID) (float64, error)
}
