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

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateReview posts a review against a product. No purchase check and no
// uniqueness rule; repeat reviews are allowed.
func (srv *reviewService) CreateReview(ctx context.Context, caller usecase.Caller, input usecase.CreateReviewInput) (*entity.Review, error) {
	if !caller.IsCustomer() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.NewValidationError("Rating must be between 1 and 5.")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to load product")
	}

	review := &entity.Review{
		ProductID:  product.ID,
		SellerID:   product.SellerID,
		CustomerID: caller.ID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	srv.logger.Info("Review created", "productID", product.ID, "customerID", caller.ID, "rating", input.Rating)

	return review, nil
}

// ListProductReviews retrieves a product's reviews, newest first.
func (srv *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return reviews, nil
}
