package impl

import (
	"context"
	"log/slog"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// PlaceOrder runs the whole checkout inside one database transaction. Each
// requested line becomes its own order; the matching product row is locked,
// its stock decremented with a floor of zero, and its status flipped to
// out_of_stock exactly when the quantity lands on zero. Lines whose product
// no longer exists are skipped. Fulfilled lines are also removed from the
// caller's cart. Any failure rolls the whole batch back.
func (srv *orderService) PlaceOrder(ctx context.Context, caller usecase.Caller, input usecase.PlaceOrderInput) ([]*entity.Order, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, domainerrors.NewValidationError("Quantity must be at least 1.")
		}
		if line.UnitPrice < 1 {
			return nil, domainerrors.NewValidationError("Unit price must be at least 1.")
		}
	}

	var created []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		orderRepo := repoFactory.NewOrderRepository()
		cartRepo := repoFactory.NewCartRepository()

		for _, line := range input.Items {
			// Lock the product row for the whole transaction so concurrent
			// checkouts serialize on the stock decrement.
			product, err := productRepo.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					continue
				}

				return errors.Wrap(err, "failed to lock product")
			}

			order := &entity.Order{
				CustomerID:      caller.ID,
				Status:          entity.OrderPending,
				PaymentMethod:   input.PaymentMethod,
				PaymentStatus:   entity.PaymentPending,
				Total:           float64(line.Quantity) * line.UnitPrice,
				DeliveryAddress: input.DeliveryAddress,
				Phone:           input.Phone,
				Items: []*entity.OrderItem{{
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
					UnitPrice: line.UnitPrice,
				}},
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				return errors.Wrap(err, "failed to create order")
			}

			// Stock floors at zero; the status flips to out_of_stock exactly
			// when the quantity lands there. The row stays locked until commit.
			remaining := product.Quantity - line.Quantity
			if remaining < 0 {
				remaining = 0
			}
			product.Quantity = remaining
			if remaining == 0 {
				product.Status = entity.ProductOutOfStock
			}
			if err := productRepo.Update(ctx, product); err != nil {
				return errors.Wrap(err, "failed to decrement stock")
			}

			// Drop the fulfilled line from the cart if it came from there.
			cartItem, err := cartRepo.FindByCustomerAndProduct(ctx, caller.ID, line.ProductID)
			switch {
			case err == nil:
				if err := cartRepo.Delete(ctx, cartItem.ID, caller.ID); err != nil {
					return errors.Wrap(err, "failed to clear cart line")
				}
			case errors.Is(err, repository.ErrCartItemNotFound):
				// Direct checkout without a cart row.
			default:
				return errors.Wrap(err, "failed to look up cart line")
			}

			created = append(created, order)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Checkout completed", "customerID", caller.ID, "orders", len(created))

	return created, nil
}

// ListOwnOrders retrieves the caller's orders, newest first.
func (srv *orderService) ListOwnOrders(ctx context.Context, caller usecase.Caller) ([]*entity.Order, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}

	orders, err := srv.orderRepo.FindByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListSellerOrders retrieves orders touching the calling seller's products,
// with item lists trimmed to the caller's own lines.
func (srv *orderService) ListSellerOrders(ctx context.Context, caller usecase.Caller) ([]*entity.Order, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	orders, err := srv.orderRepo.FindBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	return orders, nil
}

// UpdateStatus moves a pending order to in_delivery, completed or cancelled.
// The caller must own every product on the order.
func (srv *orderService) UpdateStatus(ctx context.Context, caller usecase.Caller, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if !status.IsValid() || status == entity.OrderPending {
		return nil, domainerrors.ErrInvalidOrderStatus
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to load order")
	}

	for _, item := range order.Items {
		if item.Product == nil || item.Product.SellerID != caller.ID {
			return nil, domainerrors.ErrForbiddenRole
		}
	}

	if order.Status != entity.OrderPending {
		return nil, domainerrors.ErrOrderStatusLocked
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	srv.logger.Info("Order status updated", "orderID", orderID, "status", status)

	return order, nil
}

// CancelOrder cancels the caller's own pending order.
func (srv *orderService) CancelOrder(ctx context.Context, caller usecase.Caller, orderID uuid.UUID) (*entity.Order, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.CustomerID != caller.ID {
		return nil, domainerrors.ErrOrderNotFound
	}
	if order.Status != entity.OrderPending {
		return nil, domainerrors.ErrOrderNotPending
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, entity.OrderCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.OrderCancelled

	srv.logger.Info("Order cancelled", "orderID", orderID, "customerID", caller.ID)

	return order, nil
}
