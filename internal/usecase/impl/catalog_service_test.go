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

type catalogFixtures struct {
	productRepo *mocksrepo.MockProductRepository
	sellerRepo  *mocksrepo.MockSellerRepository
	reviewRepo  *mocksrepo.MockReviewRepository
	service     usecase.CatalogUsecase
}

func createTestCatalogService(t *testing.T) catalogFixtures {
	t.Helper()

	productRepo := mocksrepo.NewMockProductRepository(t)
	sellerRepo := mocksrepo.NewMockSellerRepository(t)
	reviewRepo := mocksrepo.NewMockReviewRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return catalogFixtures{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		reviewRepo:  reviewRepo,
		service:     NewCatalogService(productRepo, sellerRepo, reviewRepo, logger),
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	fx.productRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.CreateProduct(context.Background(), seller, usecase.CreateProductInput{
		Name:     "Hilsa Fish",
		Price:    850,
		Unit:     "kg",
		Quantity: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, entity.ProductInStock, product.Status)
	assert.False(t, product.PostedAt.IsZero())
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.CreateProduct(context.Background(), seller, usecase.CreateProductInput{Price: 0, Quantity: 5})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPCode())

	_, err = fx.service.CreateProduct(context.Background(), seller, usecase.CreateProductInput{Price: 10, Quantity: 0})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPCode())
}

func TestCatalogService_CreateProduct_NonSeller(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	_, err := fx.service.CreateProduct(context.Background(), customer, usecase.CreateProductInput{Price: 10, Quantity: 1})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestCatalogService_UpdateProduct_MergeRules(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	stored := &entity.Product{
		ID:            productID,
		SellerID:      seller.ID,
		Name:          "Hilsa Fish",
		Description:   "Fresh from the Padma",
		NutritionInfo: "Rich in omega-3",
		Images:        []string{"a.jpg", "b.jpg"},
		Price:         850,
		Unit:          "kg",
		Quantity:      20,
		Status:        entity.ProductInStock,
	}
	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).Return(stored, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	emptyName := ""
	emptyNutrition := ""
	newPrice := 900.0
	product, err := fx.service.UpdateProduct(context.Background(), seller, productID, usecase.UpdateProductInput{
		Name:          &emptyName,
		NutritionInfo: &emptyNutrition,
		Images:        []string{"b.jpg", "c.jpg"},
		Price:         &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hilsa Fish", product.Name, "empty name keeps the previous value")
	assert.Equal(t, "Rich in omega-3", product.NutritionInfo, "empty nutrition info keeps the previous value")
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, product.Images, "a non-empty image list replaces the stored one")
	assert.Equal(t, 900.0, product.Price)
}

func TestCatalogService_UpdateProduct_OmittedImagesRetained(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	stored := &entity.Product{
		ID:       productID,
		SellerID: seller.ID,
		Name:     "Hilsa Fish",
		Images:   []string{"a.jpg", "b.jpg"},
		Price:    850,
		Unit:     "kg",
		Quantity: 20,
		Status:   entity.ProductInStock,
	}
	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).Return(stored, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	newPrice := 900.0
	product, err := fx.service.UpdateProduct(context.Background(), seller, productID, usecase.UpdateProductInput{
		Price: &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images, "an absent image list keeps the previous one")
}

func TestCatalogService_UpdateProduct_ZeroQuantityFlipsStatus(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	stored := &entity.Product{ID: productID, SellerID: seller.ID, Quantity: 5, Status: entity.ProductInStock}
	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).Return(stored, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	zero := 0
	product, err := fx.service.UpdateProduct(context.Background(), seller, productID, usecase.UpdateProductInput{Quantity: &zero})

	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Equal(t, entity.ProductOutOfStock, product.Status)
}

func TestCatalogService_UpdateProduct_RestockFlipsStatusBack(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	stored := &entity.Product{ID: productID, SellerID: seller.ID, Quantity: 0, Status: entity.ProductOutOfStock}
	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).Return(stored, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	ten := 10
	product, err := fx.service.UpdateProduct(context.Background(), seller, productID, usecase.UpdateProductInput{Quantity: &ten})

	require.NoError(t, err)
	assert.Equal(t, entity.ProductInStock, product.Status)
}

func TestCatalogService_UpdateProduct_NotOwned(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.UpdateProduct(context.Background(), seller, productID, usecase.UpdateProductInput{})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_DeleteProduct_NonSeller(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	err := fx.service.DeleteProduct(context.Background(), customer, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestCatalogService_DeleteProductAsAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	productID := uuid.New()

	fx.productRepo.EXPECT().DeleteByID(mock.Anything, productID).Return(nil)

	err := fx.service.DeleteProductAsAdmin(context.Background(), admin, productID)

	require.NoError(t, err)
}

func TestCatalogService_DeleteProductAsAdmin_NonAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	err := fx.service.DeleteProductAsAdmin(context.Background(), seller, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestCatalogService_MarkOutOfStock(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	productID := uuid.New()

	stored := &entity.Product{ID: productID, SellerID: seller.ID, Quantity: 7, Status: entity.ProductInStock}
	fx.productRepo.EXPECT().FindOwnedByID(mock.Anything, productID, seller.ID).Return(stored, nil)
	fx.productRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	product, err := fx.service.MarkOutOfStock(context.Background(), seller, productID)

	require.NoError(t, err)
	assert.Equal(t, entity.ProductOutOfStock, product.Status)
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	productID := uuid.New()

	product := &entity.Product{ID: productID, Name: "Hilsa Fish"}
	reviews := []*entity.Review{{ID: uuid.New(), ProductID: productID, Rating: 5}}
	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).Return(product, nil)
	fx.reviewRepo.EXPECT().FindByProduct(mock.Anything, productID).Return(reviews, nil)

	detail, err := fx.service.GetProduct(context.Background(), productID)

	require.NoError(t, err)
	assert.Equal(t, product, detail.Product)
	assert.Equal(t, reviews, detail.Reviews)
}

func TestCatalogService_ListSellerProducts(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	profileID := uuid.New()
	userID := uuid.New()

	fx.sellerRepo.EXPECT().FindByID(mock.Anything, profileID).
		Return(&entity.SellerProfile{ID: profileID, UserID: userID}, nil)
	fx.productRepo.EXPECT().FindBySeller(mock.Anything, userID).
		Return([]*entity.Product{{ID: uuid.New()}}, nil)

	products, err := fx.service.ListSellerProducts(context.Background(), profileID)

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogService_ListSellerProductsAsAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	sellerUserID := uuid.New()

	fx.sellerRepo.EXPECT().FindByUserID(mock.Anything, sellerUserID).
		Return(&entity.SellerProfile{ID: uuid.New(), UserID: sellerUserID}, nil)
	fx.productRepo.EXPECT().FindBySeller(mock.Anything, sellerUserID).
		Return([]*entity.Product{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	products, err := fx.service.ListSellerProductsAsAdmin(context.Background(), admin, sellerUserID)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogService_ListSellerProductsAsAdmin_NotASeller(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	userID := uuid.New()

	fx.sellerRepo.EXPECT().FindByUserID(mock.Anything, userID).
		Return(nil, repository.ErrSellerNotFound)

	_, err := fx.service.ListSellerProductsAsAdmin(context.Background(), admin, userID)

	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestCatalogService_ListSellerProductsAsAdmin_NonAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestCatalogService(t)

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleSeller} {
		caller := usecase.Caller{ID: uuid.New(), Role: role}
		_, err := fx.service.ListSellerProductsAsAdmin(context.Background(), caller, uuid.New())
		assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
	}
}
