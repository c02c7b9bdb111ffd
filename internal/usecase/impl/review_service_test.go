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

type reviewFixtures struct {
	reviewRepo  *mocksrepo.MockReviewRepository
	productRepo *mocksrepo.MockProductRepository
	service     usecase.ReviewUsecase
}

func createTestReviewService(t *testing.T) reviewFixtures {
	t.Helper()

	reviewRepo := mocksrepo.NewMockReviewRepository(t)
	productRepo := mocksrepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return reviewFixtures{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		service:     NewReviewService(reviewRepo, productRepo, logger),
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	fx := createTestReviewService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	sellerID := uuid.New()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).
		Return(&entity.Product{ID: productID, SellerID: sellerID}, nil)
	fx.reviewRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Review")).Return(nil)

	review, err := fx.service.CreateReview(context.Background(), customer, usecase.CreateReviewInput{
		ProductID: productID,
		Rating:    4,
		Comment:   "Fresh and well packed.",
	})

	require.NoError(t, err)
	assert.Equal(t, sellerID, review.SellerID, "seller is resolved from the product")
	assert.Equal(t, customer.ID, review.CustomerID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	t.Parallel()

	fx := createTestReviewService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.CreateReview(context.Background(), customer, usecase.CreateReviewInput{
			ProductID: uuid.New(),
			Rating:    rating,
		})

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.HTTPCode())
	}
}

func TestReviewService_CreateReview_MissingProduct(t *testing.T) {
	t.Parallel()

	fx := createTestReviewService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(mock.Anything, productID).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.CreateReview(context.Background(), customer, usecase.CreateReviewInput{
		ProductID: productID,
		Rating:    3,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestReviewService_CreateReview_NonCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestReviewService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	_, err := fx.service.CreateReview(context.Background(), seller, usecase.CreateReviewInput{
		ProductID: uuid.New(),
		Rating:    5,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestReviewService_ListProductReviews(t *testing.T) {
	t.Parallel()

	fx := createTestReviewService(t)
	productID := uuid.New()

	fx.reviewRepo.EXPECT().FindByProduct(mock.Anything, productID).
		Return([]*entity.Review{{ID: uuid.New(), Rating: 5}}, nil)

	reviews, err := fx.service.ListProductReviews(context.Background(), productID)

	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
