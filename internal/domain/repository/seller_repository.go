package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSellerNotFound is returned when no seller profile matches the lookup.
var ErrSellerNotFound = errors.New("seller not found")

// SellerRepository defines operations over seller profiles.
type SellerRepository interface {
	// FindAll retrieves every seller profile with its user loaded.
	FindAll(ctx context.Context) ([]*entity.SellerProfile, error)

	// FindByID retrieves a seller profile by its own ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error)

	// FindByUserID retrieves the seller profile owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error)

	// Update modifies an existing seller profile.
	Update(ctx context.Context, profile *entity.SellerProfile) error
}
