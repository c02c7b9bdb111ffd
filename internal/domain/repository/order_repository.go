package repository

import (
	"context"
	"errors"
	"time"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines operations over orders and their items.
type OrderRepository interface {
	// Create persists a new order with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items and products loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByCustomer retrieves a customer's orders, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// FindBySeller retrieves orders containing at least one of the seller's
	// products. Each order's Items slice is trimmed to that seller's lines.
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus sets the delivery status of an order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// CountAll returns the total number of orders.
	CountAll(ctx context.Context) (int64, error)

	// CountDistinctBySeller returns how many orders include the seller's products.
	CountDistinctBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// CountDistinctBySellerSince is CountDistinctBySeller restricted to
	// orders created at or after the given time.
	CountDistinctBySellerSince(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error)
}
