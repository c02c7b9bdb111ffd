package impl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	mocksrepo "bazar/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixtures struct {
	txManager   *mocksrepo.MockTransactionManager
	orderRepo   *mocksrepo.MockOrderRepository
	txOrderRepo *mocksrepo.MockOrderRepository
	productRepo *mocksrepo.MockProductRepository
	cartRepo    *mocksrepo.MockCartRepository
	service     usecase.OrderUsecase
}

func createTestOrderService(t *testing.T) orderFixtures {
	t.Helper()

	txManager := mocksrepo.NewMockTransactionManager(t)
	orderRepo := mocksrepo.NewMockOrderRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return orderFixtures{
		txManager:   txManager,
		orderRepo:   orderRepo,
		txOrderRepo: mocksrepo.NewMockOrderRepository(t),
		productRepo: mocksrepo.NewMockProductRepository(t),
		cartRepo:    mocksrepo.NewMockCartRepository(t),
		service:     NewOrderService(txManager, orderRepo, logger),
	}
}

// expectTransaction runs the checkout body against the fixture's
// transaction-scoped repository mocks.
func (fx orderFixtures) expectTransaction(t *testing.T) {
	t.Helper()

	factory := mocksrepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(fx.productRepo)
	factory.EXPECT().NewOrderRepository().Return(fx.txOrderRepo)
	factory.EXPECT().NewCartRepository().Return(fx.cartRepo)

	fx.txManager.EXPECT().Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestOrderService_PlaceOrder_OneOrderPerLine(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	fishID := uuid.New()
	riceID := uuid.New()

	fx.expectTransaction(t)

	fish := &entity.Product{ID: fishID, Quantity: 10, Status: entity.ProductInStock}
	rice := &entity.Product{ID: riceID, Quantity: 5, Status: entity.ProductInStock}
	for _, product := range []*entity.Product{fish, rice} {
		fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, product.ID).Return(product, nil)
		fx.productRepo.EXPECT().Update(mock.Anything, product).Return(nil)
		fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, product.ID).
			Return(nil, repository.ErrCartItemNotFound)
	}
	fx.txOrderRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil).Times(2)

	orders, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: fishID, Quantity: 2, UnitPrice: 850},
			{ProductID: riceID, Quantity: 5, UnitPrice: 72},
		},
		PaymentMethod:   "cod",
		DeliveryAddress: "House 12, Road 5, Dhanmondi",
		Phone:           "01712345678",
	})

	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, 1700.0, orders[0].Total)
	assert.Equal(t, 360.0, orders[1].Total)
	for _, order := range orders {
		assert.Equal(t, customer.ID, order.CustomerID)
		assert.Equal(t, entity.OrderPending, order.Status)
		assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
		require.Len(t, order.Items, 1)
	}

	assert.Equal(t, 8, fish.Quantity)
	assert.Equal(t, entity.ProductInStock, fish.Status)
	assert.Equal(t, 0, rice.Quantity)
	assert.Equal(t, entity.ProductOutOfStock, rice.Status, "selling the last unit flips the status")
}

func TestOrderService_PlaceOrder_StockFloorAndStatusFlip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stock        int
		bought       int
		wantQuantity int
		wantStatus   entity.ProductStatus
	}{
		{"partial stock remains", 10, 4, 6, entity.ProductInStock},
		{"exact stock zeroes out", 4, 4, 0, entity.ProductOutOfStock},
		{"overselling floors at zero", 2, 5, 0, entity.ProductOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := createTestOrderService(t)
			customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
			product := &entity.Product{ID: uuid.New(), Quantity: tt.stock, Status: entity.ProductInStock}

			fx.expectTransaction(t)

			fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, product.ID).Return(product, nil)
			fx.productRepo.EXPECT().Update(mock.Anything, product).Return(nil)
			fx.txOrderRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
			fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, product.ID).
				Return(nil, repository.ErrCartItemNotFound)

			_, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
				Items: []usecase.OrderLineInput{{ProductID: product.ID, Quantity: tt.bought, UnitPrice: 50}},
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuantity, product.Quantity)
			assert.Equal(t, tt.wantStatus, product.Status)
		})
	}
}

func TestOrderService_PlaceOrder_SkipsMissingProducts(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	goneID := uuid.New()
	aliveID := uuid.New()

	fx.expectTransaction(t)

	fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, goneID).
		Return(nil, repository.ErrProductNotFound)
	fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, aliveID).
		Return(&entity.Product{ID: aliveID, Quantity: 3, Status: entity.ProductInStock}, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.txOrderRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, aliveID).
		Return(nil, repository.ErrCartItemNotFound)

	orders, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: goneID, Quantity: 2, UnitPrice: 100},
			{ProductID: aliveID, Quantity: 1, UnitPrice: 50},
		},
	})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, aliveID, orders[0].Items[0].ProductID)
}

func TestOrderService_PlaceOrder_ClearsFulfilledCartLines(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()
	cartItemID := uuid.New()

	fx.expectTransaction(t)

	fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, productID).
		Return(&entity.Product{ID: productID, Quantity: 8, Status: entity.ProductInStock}, nil)
	fx.txOrderRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.productRepo.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.cartRepo.EXPECT().FindByCustomerAndProduct(mock.Anything, customer.ID, productID).
		Return(&entity.CartItem{ID: cartItemID, CustomerID: customer.ID, ProductID: productID}, nil)
	fx.cartRepo.EXPECT().Delete(mock.Anything, cartItemID, customer.ID).Return(nil)

	_, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: productID, Quantity: 3, UnitPrice: 40}},
	})

	require.NoError(t, err)
}

func TestOrderService_PlaceOrder_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()

	fx.expectTransaction(t)

	fx.productRepo.EXPECT().FindByIDForUpdate(mock.Anything, productID).
		Return(&entity.Product{ID: productID, Quantity: 5, Status: entity.ProductInStock}, nil)
	fx.txOrderRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.productRepo.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entity.Product")).
		Return(errors.New("connection reset"))

	orders, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: productID, Quantity: 2, UnitPrice: 100}},
	})

	require.Error(t, err)
	assert.Nil(t, orders)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	_, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{})

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_PlaceOrder_InvalidLines(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	var appErr domainerrors.AppError

	_, err := fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 0, UnitPrice: 100}},
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPCode())

	_, err = fx.service.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 0}},
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPCode())
}

func TestOrderService_PlaceOrder_NonCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.PlaceOrder(context.Background(), seller, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 10}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		Status: entity.OrderPending,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Product: &entity.Product{SellerID: seller.ID}},
		},
	}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)
	fx.orderRepo.EXPECT().UpdateStatus(mock.Anything, orderID, entity.OrderInDelivery).Return(nil)

	updated, err := fx.service.UpdateStatus(context.Background(), seller, orderID, entity.OrderInDelivery)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderInDelivery, updated.Status)
}

func TestOrderService_UpdateStatus_NotPending(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		Status: entity.OrderCompleted,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Product: &entity.Product{SellerID: seller.ID}},
		},
	}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(context.Background(), seller, orderID, entity.OrderInDelivery)

	assert.ErrorIs(t, err, domainerrors.ErrOrderStatusLocked)
}

func TestOrderService_UpdateStatus_ForeignOrder(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		Status: entity.OrderPending,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Product: &entity.Product{SellerID: uuid.New()}},
		},
	}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(context.Background(), seller, orderID, entity.OrderCompleted)

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestOrderService_UpdateStatus_PartialOwnership(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	orderID := uuid.New()

	// One line belongs to the caller, the other to a different seller.
	order := &entity.Order{
		ID:     orderID,
		Status: entity.OrderPending,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Product: &entity.Product{SellerID: seller.ID}},
			{ProductID: uuid.New(), Product: &entity.Product{SellerID: uuid.New()}},
		},
	}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(context.Background(), seller, orderID, entity.OrderInDelivery)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestOrderService_UpdateStatus_InvalidTarget(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.UpdateStatus(context.Background(), seller, uuid.New(), entity.OrderStatus("shipped"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	_, err = fx.service.UpdateStatus(context.Background(), seller, uuid.New(), entity.OrderPending)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus, "an order cannot be moved back to pending")
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, CustomerID: customer.ID, Status: entity.OrderPending}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)
	fx.orderRepo.EXPECT().UpdateStatus(mock.Anything, orderID, entity.OrderCancelled).Return(nil)

	cancelled, err := fx.service.CancelOrder(context.Background(), customer, orderID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)
}

func TestOrderService_CancelOrder_NotPending(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, CustomerID: customer.ID, Status: entity.OrderInDelivery}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)

	_, err := fx.service.CancelOrder(context.Background(), customer, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotPending)
}

func TestOrderService_CancelOrder_ForeignOrder(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, CustomerID: uuid.New(), Status: entity.OrderPending}
	fx.orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(order, nil)

	_, err := fx.service.CancelOrder(context.Background(), customer, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListOwnOrders_NonCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.ListOwnOrders(context.Background(), seller)

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestOrderService_ListSellerOrders(t *testing.T) {
	t.Parallel()

	fx := createTestOrderService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	fx.orderRepo.EXPECT().FindBySeller(mock.Anything, seller.ID).
		Return([]*entity.Order{{ID: uuid.New()}}, nil)

	orders, err := fx.service.ListSellerOrders(context.Background(), seller)

	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
