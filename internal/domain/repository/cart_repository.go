package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when no cart item matches the lookup.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines operations over customer cart rows.
type CartRepository interface {
	// FindByCustomer retrieves a customer's cart items with products loaded.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CartItem, error)

	// FindByCustomerAndProduct retrieves the single row for a (customer, product) pair.
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartItem, error)

	// FindOwnedByID retrieves a cart item only if it belongs to the customer.
	FindOwnedByID(ctx context.Context, id, customerID uuid.UUID) (*entity.CartItem, error)

	// Create persists a new cart item.
	Create(ctx context.Context, item *entity.CartItem) error

	// Update persists an existing cart item.
	Update(ctx context.Context, item *entity.CartItem) error

	// Delete removes a cart item owned by the customer.
	Delete(ctx context.Context, id, customerID uuid.UUID) error

	// DeleteByCustomer empties a customer's cart.
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error
}
