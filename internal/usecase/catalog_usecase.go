package usecase

import (
	"context"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateProductInput defines the data a seller submits to publish a listing.
type CreateProductInput struct {
	Name          string
	Description   string
	NutritionInfo string
	Images        []string
	Price         float64
	Unit          string
	Quantity      int
}

// UpdateProductInput defines the partial update of a listing. Nil pointers
// leave the previous value untouched. Images and NutritionInfo merge with the
// existing values instead of replacing them.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	NutritionInfo *string
	Images        []string
	Price         *float64
	Unit          *string
	Quantity      *int
}

// --- Output DTOs ---

// ProductDetail bundles a product with its review thread.
type ProductDetail struct {
	Product *entity.Product
	Reviews []*entity.Review
}

// CatalogUsecase defines the interface for product listing operations.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, filters repository.ProductFilters) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)
	ListSellerProductsAsAdmin(ctx context.Context, caller Caller, sellerUserID uuid.UUID) ([]*entity.Product, error)
	ListOwnProducts(ctx context.Context, caller Caller) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, caller Caller, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, caller Caller, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, caller Caller, id uuid.UUID) error
	DeleteProductAsAdmin(ctx context.Context, caller Caller, id uuid.UUID) error
	MarkOutOfStock(ctx context.Context, caller Caller, id uuid.UUID) (*entity.Product, error)
}
