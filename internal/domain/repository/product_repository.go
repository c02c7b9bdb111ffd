package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ProductFilters narrows catalog listings. Zero values mean "no filter".
type ProductFilters struct {
	Search      string
	MaxPrice    float64
	PostedToday bool
	Division    string
	District    string
	Area        string
}

// ProductRepository defines operations over catalog listings.
type ProductRepository interface {
	// FindByID retrieves a product with its seller loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product with a row-level write lock.
	// Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindWithFilters retrieves products matching the filters, newest first.
	FindWithFilters(ctx context.Context, filters ProductFilters) ([]*entity.Product, error)

	// FindBySeller retrieves all products owned by a seller, newest first.
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// FindOwnedByID retrieves a product only if it belongs to the seller.
	FindOwnedByID(ctx context.Context, id, sellerID uuid.UUID) (*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update persists the full state of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product owned by the seller.
	Delete(ctx context.Context, id, sellerID uuid.UUID) error

	// DeleteByID removes a product regardless of owner. Admin use only.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// CountBySeller returns the number of listings a seller owns.
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// CountActiveBySeller returns the seller's in-stock listing count.
	CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// CountAll returns the total number of listings.
	CountAll(ctx context.Context) (int64, error)
}
