// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their role profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("CustomerProfile").
		First(&userM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("CustomerProfile").
		First(&userM, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByEmailOrPhone retrieves a single user matching the identifier against
// either the email or the phone column.
func (repo *userRepository) FindByEmailOrPhone(ctx context.Context, identifier string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Preload("CustomerProfile").
		First(&userM, "email = ? OR phone = ?", identifier, identifier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by email or phone")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity together with its role profile.
// GORM's Create with associations inserts into users plus seller_profiles or
// customer_profiles in one statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	userM := fromUserDomain(user)
	userM.PasswordHash = passwordHash

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewUniqueConflictError(uniqueViolationField(err))
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid foreign key reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate generated IDs and timestamps back onto the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if user.SellerProfile != nil && userM.SellerProfile != nil {
		user.SellerProfile.ID = userM.SellerProfile.ID
		user.SellerProfile.UserID = userM.ID
	}
	if user.CustomerProfile != nil && userM.CustomerProfile != nil {
		user.CustomerProfile.ID = userM.CustomerProfile.ID
		user.CustomerProfile.UserID = userM.ID
	}

	return nil
}

// Update modifies an existing user row. The password hash and role are left untouched.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	updates := map[string]any{
		"full_name": user.FullName,
		"email":     user.Email,
		"phone":     user.Phone,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(updates)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewUniqueConflictError(uniqueViolationField(err))
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user row. Dependent rows cascade at the database level.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// PasswordHash returns the stored password hash for a user.
func (repo *userRepository) PasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("password_hash").
		Where("id = ?", id).
		Take(&hash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrUserNotFound
		}
		return "", errors.Wrap(err, "failed to load password hash")
	}

	return hash, nil
}

// CountByRole returns the number of users holding the given role.
func (repo *userRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role = ?", string(role)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users by role")
	}

	return count, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		Phone:           data.Phone,
		Role:            entity.Role(data.Role),
		SellerProfile:   toSellerProfileDomain(data.SellerProfile),
		CustomerProfile: toCustomerProfileDomain(data.CustomerProfile),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		Phone:           data.Phone,
		Role:            string(data.Role),
		SellerProfile:   fromSellerProfileDomain(data.SellerProfile),
		CustomerProfile: fromCustomerProfileDomain(data.CustomerProfile),
	}
}

// toSellerProfileDomain converts a GORM SellerProfileModel to a domain SellerProfile entity.
func toSellerProfileDomain(data *model.SellerProfileModel) *entity.SellerProfile {
	if data == nil {
		return nil
	}

	return &entity.SellerProfile{
		ID:        data.ID,
		UserID:    data.UserID,
		ShopName:  data.ShopName,
		ShopID:    data.ShopID,
		Division:  data.Division,
		District:  data.District,
		Area:      data.Area,
		User:      toUserDomain(data.User),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromSellerProfileDomain converts a domain SellerProfile entity to a GORM SellerProfileModel.
func fromSellerProfileDomain(data *entity.SellerProfile) *model.SellerProfileModel {
	if data == nil {
		return nil
	}

	return &model.SellerProfileModel{
		ID:       data.ID,
		UserID:   data.UserID,
		ShopName: data.ShopName,
		ShopID:   data.ShopID,
		Division: data.Division,
		District: data.District,
		Area:     data.Area,
	}
}

// toCustomerProfileDomain converts a GORM CustomerProfileModel to a domain CustomerProfile entity.
func toCustomerProfileDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		ID:             data.ID,
		UserID:         data.UserID,
		DefaultAddress: data.DefaultAddress,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromCustomerProfileDomain converts a domain CustomerProfile entity to a GORM CustomerProfileModel.
func fromCustomerProfileDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		ID:             data.ID,
		UserID:         data.UserID,
		DefaultAddress: data.DefaultAddress,
	}
}
