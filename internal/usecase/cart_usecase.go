package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddToCartInput defines the data required to add a product to the cart.
type AddToCartInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartUsecase defines the interface for cart operations. All operations are
// scoped to the calling customer.
type CartUsecase interface {
	ViewCart(ctx context.Context, caller Caller) ([]*entity.CartItem, error)
	AddToCart(ctx context.Context, caller Caller, input AddToCartInput) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, caller Caller, itemID uuid.UUID, quantity int) (*entity.CartItem, error)
	RemoveItem(ctx context.Context, caller Caller, itemID uuid.UUID) error
}
