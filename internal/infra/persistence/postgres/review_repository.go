package postgres

import (
	"context"
	"database/sql"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid review reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// FindByProduct retrieves a product's reviews with customers loaded, newest first.
func (repo *reviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Customer").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return toReviewDomainSlice(reviews), nil
}

// FindRecent retrieves the most recent reviews platform-wide, capped at limit.
func (repo *reviewRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Review, error) {
	var reviews []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent reviews")
	}

	return toReviewDomainSlice(reviews), nil
}

// FindRecentBySeller retrieves the seller's most recent reviews, capped at limit.
func (repo *reviewRepository) FindRecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.Review, error) {
	var reviews []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller reviews")
	}

	return toReviewDomainSlice(reviews), nil
}

// CountAll returns the total number of reviews.
func (repo *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count reviews")
	}

	return count, nil
}

// CountBySeller returns how many reviews target the seller's products.
func (repo *reviewRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count seller reviews")
	}

	return count, nil
}

// AverageRatingBySeller returns the mean rating across the seller's products,
// 0 when the seller has no reviews.
func (repo *reviewRepository) AverageRatingBySeller(ctx context.Context, sellerID uuid.UUID) (float64, error) {
	var avg sql.NullFloat64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("AVG(rating)").
		Where("seller_id = ?", sellerID).
		Take(&avg).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to average seller rating")
	}
	if !avg.Valid {
		return 0, nil
	}

	return avg.Float64, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SellerID:   data.SellerID,
		CustomerID: data.CustomerID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		Product:    toProductDomain(data.Product),
		Customer:   toUserDomain(data.Customer),
		CreatedAt:  data.CreatedAt,
	}
}

func toReviewDomainSlice(data []*model.ReviewModel) []*entity.Review {
	out := make([]*entity.Review, 0, len(data))
	for _, r := range data {
		out = append(out, toReviewDomain(r))
	}

	return out
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SellerID:   data.SellerID,
		CustomerID: data.CustomerID,
		Rating:     data.Rating,
		Comment:    data.Comment,
	}
}
