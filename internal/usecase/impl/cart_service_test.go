package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	mocksrepo "bazar/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixtures struct {
	cartRepo    *mocksrepo.MockCartRepository
	productRepo *mocksrepo.MockProductRepository
	service     usecase.CartUsecase
}

func createTestCartService(t *testing.T) cartFixtures {
	t.Helper()

	cartRepo := mocksrepo.NewMockCartRepository(t)
	productRepo := mocksrepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return cartFixtures{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		service:     NewCartService(cartRepo, productRepo, logger),
	}
}

func TestCartService_AddToCart_NewRow(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, productID).
		Return(nil, repository.ErrCartItemNotFound)
	fx.cartRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.CartItem")).Return(nil)

	item, err := fx.service.AddToCart(context.Background(), customer, usecase.AddToCartInput{
		ProductID: productID,
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, customer.ID, item.CustomerID)
	assert.Equal(t, productID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartService_AddToCart_AccumulatesQuantity(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()

	existing := &entity.CartItem{ID: uuid.New(), CustomerID: customer.ID, ProductID: productID, Quantity: 3}
	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, productID).Return(existing, nil)
	fx.cartRepo.EXPECT().Update(mock.Anything, existing).Return(nil)

	item, err := fx.service.AddToCart(context.Background(), customer, usecase.AddToCartInput{
		ProductID: productID,
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, item.ID, "no duplicate row is created")
	assert.Equal(t, 5, item.Quantity)
}

func TestCartService_AddToCart_MissingProduct(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.AddToCart(context.Background(), customer, usecase.AddToCartInput{
		ProductID: productID,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddToCart_NonCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.AddToCart(context.Background(), seller, usecase.AddToCartInput{
		ProductID: uuid.New(),
		Quantity:  1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	_, err := fx.service.AddToCart(context.Background(), customer, usecase.AddToCartInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPCode())
}

func TestCartService_UpdateQuantity(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	itemID := uuid.New()

	item := &entity.CartItem{ID: itemID, CustomerID: customer.ID, Quantity: 1}
	fx.cartRepo.EXPECT().FindOwnedByID(mock.Anything, itemID, customer.ID).Return(item, nil)
	fx.cartRepo.EXPECT().Update(mock.Anything, item).Return(nil)

	updated, err := fx.service.UpdateQuantity(context.Background(), customer, itemID, 4)

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestCartService_UpdateQuantity_NotOwned(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	itemID := uuid.New()

	fx.cartRepo.EXPECT().FindOwnedByID(mock.Anything, itemID, customer.ID).
		Return(nil, repository.ErrCartItemNotFound)

	_, err := fx.service.UpdateQuantity(context.Background(), customer, itemID, 2)

	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	itemID := uuid.New()

	fx.cartRepo.EXPECT().Delete(mock.Anything, itemID, customer.ID).Return(nil)

	err := fx.service.RemoveItem(context.Background(), customer, itemID)

	require.NoError(t, err)
}

func TestCartService_ViewCart_NonCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestCartService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}

	_, err := fx.service.ViewCart(context.Background(), admin)

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}
