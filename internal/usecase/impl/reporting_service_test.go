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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportingFixtures struct {
	userRepo    *mocksrepo.MockUserRepository
	sellerRepo  *mocksrepo.MockSellerRepository
	productRepo *mocksrepo.MockProductRepository
	orderRepo   *mocksrepo.MockOrderRepository
	reviewRepo  *mocksrepo.MockReviewRepository
	service     usecase.ReportingUsecase
}

func createTestReportingService(t *testing.T) reportingFixtures {
	t.Helper()

	userRepo := mocksrepo.NewMockUserRepository(t)
	sellerRepo := mocksrepo.NewMockSellerRepository(t)
	productRepo := mocksrepo.NewMockProductRepository(t)
	orderRepo := mocksrepo.NewMockOrderRepository(t)
	reviewRepo := mocksrepo.NewMockReviewRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return reportingFixtures{
		userRepo:    userRepo,
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
		service:     NewReportingService(userRepo, sellerRepo, productRepo, orderRepo, reviewRepo, logger),
	}
}

func TestReportingService_PlatformStats(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}

	fx.userRepo.EXPECT().CountByRole(mock.Anything, entity.RoleSeller).Return(int64(12), nil)
	fx.userRepo.EXPECT().CountByRole(mock.Anything, entity.RoleCustomer).Return(int64(480), nil)
	fx.productRepo.EXPECT().CountAll(mock.Anything).Return(int64(96), nil)
	fx.reviewRepo.EXPECT().CountAll(mock.Anything).Return(int64(310), nil)

	stats, err := fx.service.PlatformStats(context.Background(), admin)

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Sellers)
	assert.Equal(t, int64(480), stats.Customers)
	assert.Equal(t, int64(96), stats.Products)
	assert.Equal(t, int64(310), stats.Reviews)
}

func TestReportingService_PlatformStats_NonAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleSeller} {
		caller := usecase.Caller{ID: uuid.New(), Role: role}
		_, err := fx.service.PlatformStats(context.Background(), caller)
		assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
	}
}

func TestReportingService_SellerDashboard(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	products := []*entity.Product{
		{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
	}
	fx.productRepo.EXPECT().CountActiveBySeller(mock.Anything, seller.ID).Return(int64(4), nil)
	fx.orderRepo.EXPECT().CountDistinctBySellerSince(mock.Anything, seller.ID, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil)
	fx.reviewRepo.EXPECT().AverageRatingBySeller(mock.Anything, seller.ID).Return(4.3, nil)
	fx.productRepo.EXPECT().FindBySeller(mock.Anything, seller.ID).Return(products, nil)

	dashboard, err := fx.service.SellerDashboard(context.Background(), seller)

	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.ActiveListings)
	assert.Equal(t, int64(2), dashboard.OrdersToday)
	assert.Equal(t, 4.3, dashboard.AverageRating)
	assert.Len(t, dashboard.RecentProducts, 3, "recent products are capped")
}

func TestReportingService_SellerStats(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	profileID := uuid.New()
	userID := uuid.New()

	fx.sellerRepo.EXPECT().FindByID(mock.Anything, profileID).
		Return(&entity.SellerProfile{ID: profileID, UserID: userID}, nil)
	fx.productRepo.EXPECT().CountBySeller(mock.Anything, userID).Return(int64(8), nil)
	fx.orderRepo.EXPECT().CountDistinctBySeller(mock.Anything, userID).Return(int64(30), nil)
	fx.reviewRepo.EXPECT().AverageRatingBySeller(mock.Anything, userID).Return(4.7, nil)
	fx.reviewRepo.EXPECT().CountBySeller(mock.Anything, userID).Return(int64(21), nil)
	fx.reviewRepo.EXPECT().FindRecentBySeller(mock.Anything, userID, recentReviewLimit).
		Return([]*entity.Review{{ID: uuid.New()}}, nil)

	stats, err := fx.service.SellerStats(context.Background(), profileID)

	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.Products)
	assert.Equal(t, int64(30), stats.Orders)
	assert.Equal(t, 4.7, stats.AverageRating)
	assert.Equal(t, int64(21), stats.ReviewCount)
	assert.Len(t, stats.RecentReviews, 1)
}

func TestReportingService_DeleteSeller(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	sellerUserID := uuid.New()

	fx.userRepo.EXPECT().FindByID(mock.Anything, sellerUserID).
		Return(&entity.User{ID: sellerUserID, Role: entity.RoleSeller}, nil)
	fx.userRepo.EXPECT().Delete(mock.Anything, sellerUserID).Return(nil)

	err := fx.service.DeleteSeller(context.Background(), admin, sellerUserID)

	require.NoError(t, err)
}

func TestReportingService_DeleteSeller_NotASeller(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).
		Return(&entity.User{ID: userID, Role: entity.RoleCustomer}, nil)

	err := fx.service.DeleteSeller(context.Background(), admin, userID)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestReportingService_DeleteSeller_Missing(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	err := fx.service.DeleteSeller(context.Background(), admin, userID)

	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestReportingService_DeleteSeller_NonAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	err := fx.service.DeleteSeller(context.Background(), seller, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestReportingService_RecentReviews(t *testing.T) {
	t.Parallel()

	fx := createTestReportingService(t)
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}

	fx.reviewRepo.EXPECT().FindRecent(mock.Anything, recentReviewLimit).
		Return([]*entity.Review{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	reviews, err := fx.service.RecentReviews(context.Background(), admin)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
