package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// OrderLineInput is one requested (product, quantity, unit price) line at checkout.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
}

// PlaceOrderInput defines the checkout payload. Each line becomes its own
// order; lines referencing missing products are skipped silently.
type PlaceOrderInput struct {
	Items           []OrderLineInput
	PaymentMethod   string
	DeliveryAddress string
	Phone           string
}

// OrderUsecase defines the interface for order operations.
type OrderUsecase interface {
	// PlaceOrder runs the whole checkout inside one database transaction:
	// order creation and stock decrement commit or roll back together.
	PlaceOrder(ctx context.Context, caller Caller, input PlaceOrderInput) ([]*entity.Order, error)
	ListOwnOrders(ctx context.Context, caller Caller) ([]*entity.Order, error)
	ListSellerOrders(ctx context.Context, caller Caller) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, caller Caller, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	CancelOrder(ctx context.Context, caller Caller, orderID uuid.UUID) (*entity.Order, error)
}
