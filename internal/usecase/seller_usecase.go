package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateSellerProfileInput defines the partial update of the caller's shop.
// Nil pointers leave the previous value untouched.
type UpdateSellerProfileInput struct {
	ShopName *string
	Division *string
	District *string
	Area     *string
}

// SellerUsecase defines the interface for the public sellers directory and
// the seller's own profile management.
type SellerUsecase interface {
	ListSellers(ctx context.Context) ([]*entity.SellerProfile, error)
	GetSeller(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error)
	UpdateOwnProfile(ctx context.Context, caller Caller, input UpdateSellerProfileInput) (*entity.SellerProfile, error)
	ShopQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
