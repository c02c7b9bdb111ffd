package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Output DTOs ---

// PlatformStats aggregates platform-wide counts for the admin overview.
type PlatformStats struct {
	Sellers   int64
	Customers int64
	Products  int64
	Reviews   int64
}

// SellerDashboard aggregates the caller's shop activity.
type SellerDashboard struct {
	ActiveListings int64
	OrdersToday    int64
	AverageRating  float64
	RecentProducts []*entity.Product
}

// SellerStats is the public per-seller summary.
type SellerStats struct {
	Products      int64
	Orders        int64
	AverageRating float64
	ReviewCount   int64
	RecentReviews []*entity.Review
}

// ReportingUsecase defines the interface for read-only reporting and the
// admin's destructive seller removal.
type ReportingUsecase interface {
	PlatformStats(ctx context.Context, caller Caller) (*PlatformStats, error)
	RecentReviews(ctx context.Context, caller Caller) ([]*entity.Review, error)
	SellerDashboard(ctx context.Context, caller Caller) (*SellerDashboard, error)
	SellerStats(ctx context.Context, sellerID uuid.UUID) (*SellerStats, error)
	DeleteSeller(ctx context.Context, caller Caller, sellerUserID uuid.UUID) error
}
