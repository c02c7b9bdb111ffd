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

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// ViewCart retrieves the caller's cart rows with live product snapshots.
func (srv *cartService) ViewCart(ctx context.Context, caller usecase.Caller) ([]*entity.CartItem, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}

	items, err := srv.cartRepo.FindByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return items, nil
}

// AddToCart adds a product to the caller's cart. An existing row for the
// same product accumulates quantity instead of duplicating.
func (srv *cartService) AddToCart(ctx context.Context, caller usecase.Caller, input usecase.AddToCartInput) (*entity.CartItem, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if input.Quantity < 1 {
		return nil, domainerrors.NewValidationError("Quantity must be at least 1.")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to load product")
	}

	existing, err := srv.cartRepo.FindByCustomerAndProduct(ctx, caller.ID, input.ProductID)
	switch {
	case err == nil:
		existing.Quantity += input.Quantity
		if err := srv.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}

		return existing, nil
	case errors.Is(err, repository.ErrCartItemNotFound):
		item := &entity.CartItem{
			CustomerID: caller.ID,
			ProductID:  input.ProductID,
			Quantity:   input.Quantity,
		}
		if err := srv.cartRepo.Create(ctx, item); err != nil {
			return nil, err
		}

		return item, nil
	default:
		return nil, errors.Wrap(err, "failed to look up cart item")
	}
}

// UpdateQuantity sets the quantity of an owned cart row.
func (srv *cartService) UpdateQuantity(ctx context.Context, caller usecase.Caller, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if quantity < 1 {
		return nil, domainerrors.NewValidationError("Quantity must be at least 1.")
	}

	item, err := srv.cartRepo.FindOwnedByID(ctx, itemID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, domainerrors.ErrCartItemNotFound
		}
		return nil, errors.Wrap(err, "failed to load cart item")
	}

	item.Quantity = quantity
	if err := srv.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// RemoveItem deletes an owned cart row.
func (srv *cartService) RemoveItem(ctx context.Context, caller usecase.Caller, itemID uuid.UUID) error {
	if !caller.IsCustomer() {
		return domainerrors.ErrForbiddenRole
	}

	if err := srv.cartRepo.Delete(ctx, itemID, caller.ID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}
		return err
	}

	return nil
}
