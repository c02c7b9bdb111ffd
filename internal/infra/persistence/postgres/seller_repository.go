package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sellerRepository implements the domain.SellerRepository interface using GORM.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

// FindAll retrieves every seller profile with its user loaded.
func (repo *sellerRepository) FindAll(ctx context.Context) ([]*entity.SellerProfile, error) {
	var profiles []*model.SellerProfileModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	out := make([]*entity.SellerProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toSellerProfileDomain(p))
	}

	return out, nil
}

// FindByID retrieves a seller profile by its own ID.
func (repo *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error) {
	var profile model.SellerProfileModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to find seller by id")
	}

	return toSellerProfileDomain(&profile), nil
}

// FindByUserID retrieves the seller profile owned by the given user.
func (repo *sellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	var profile model.SellerProfileModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to find seller by user id")
	}

	return toSellerProfileDomain(&profile), nil
}

// Update modifies the mutable fields of a seller profile. ShopID never changes.
func (repo *sellerRepository) Update(ctx context.Context, profile *entity.SellerProfile) error {
	updates := map[string]any{
		"shop_name": profile.ShopName,
		"division":  profile.Division,
		"district":  profile.District,
		"area":      profile.Area,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.SellerProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(updates)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewUniqueConflictError(uniqueViolationField(err))
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update seller profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSellerNotFound
	}

	return nil
}
