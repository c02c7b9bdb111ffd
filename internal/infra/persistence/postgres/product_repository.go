package postgres

import (
	"context"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a product with its seller loaded.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Seller.SellerProfile").
		First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByIDForUpdate retrieves a product with a row-level write lock.
// Must be called inside a transaction.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to lock product row")
	}

	return toProductDomain(&productM), nil
}

// FindWithFilters retrieves products matching the filters, newest first.
// Search and location filters are case-insensitive substring matches; search
// also covers the owning seller's shop and owner names.
func (repo *productRepository) FindWithFilters(ctx context.Context, filters repository.ProductFilters) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Joins("JOIN users ON users.id = products.seller_id").
		Joins("LEFT JOIN seller_profiles ON seller_profiles.user_id = products.seller_id").
		Preload("Seller.SellerProfile")

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"products.name ILIKE ? OR products.description ILIKE ? OR seller_profiles.shop_name ILIKE ? OR users.full_name ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filters.MaxPrice > 0 {
		query = query.Where("products.price <= ?", filters.MaxPrice)
	}
	if filters.PostedToday {
		query = query.Where("products.posted_at >= ?", startOfToday())
	}
	if filters.Division != "" {
		query = query.Where("seller_profiles.division ILIKE ?", "%"+filters.Division+"%")
	}
	if filters.District != "" {
		query = query.Where("seller_profiles.district ILIKE ?", "%"+filters.District+"%")
	}
	if filters.Area != "" {
		query = query.Where("seller_profiles.area ILIKE ?", "%"+filters.Area+"%")
	}

	var products []*model.ProductModel
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainSlice(products), nil
}

// FindBySeller retrieves all products owned by a seller, newest first.
func (repo *productRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	var products []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("posted_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return toProductDomainSlice(products), nil
}

// FindOwnedByID retrieves a product only if it belongs to the seller.
func (repo *productRepository) FindOwnedByID(ctx context.Context, id, sellerID uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		First(&productM, "id = ? AND seller_id = ?", id, sellerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to find owned product")
	}

	return toProductDomain(&productM), nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid seller reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update persists the full state of an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	updates := map[string]any{
		"name":           product.Name,
		"description":    product.Description,
		"nutrition_info": product.NutritionInfo,
		"images":         model.StringList(product.Images),
		"price":          product.Price,
		"unit":           product.Unit,
		"quantity":       product.Quantity,
		"status":         string(product.Status),
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND seller_id = ?", product.ID, product.SellerID).
		Updates(updates)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product owned by the seller.
func (repo *productRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.ProductModel{}, "id = ? AND seller_id = ?", id, sellerID)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DeleteByID removes a product regardless of owner. Admin use only.
func (repo *productRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// CountBySeller returns the number of listings a seller owns.
func (repo *productRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count seller products")
	}

	return count, nil
}

// CountActiveBySeller returns the seller's in-stock listing count.
func (repo *productRepository) CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("seller_id = ? AND status = ?", sellerID, string(entity.ProductInStock)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count active seller products")
	}

	return count, nil
}

// CountAll returns the total number of listings.
func (repo *productRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		SellerID:      data.SellerID,
		Name:          data.Name,
		Description:   data.Description,
		NutritionInfo: data.NutritionInfo,
		Images:        []string(data.Images),
		Price:         data.Price,
		Unit:          data.Unit,
		Quantity:      data.Quantity,
		Status:        entity.ProductStatus(data.Status),
		PostedAt:      data.PostedAt,
		Seller:        toUserDomain(data.Seller),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toProductDomainSlice(data []*model.ProductModel) []*entity.Product {
	out := make([]*entity.Product, 0, len(data))
	for _, p := range data {
		out = append(out, toProductDomain(p))
	}

	return out
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		SellerID:      data.SellerID,
		Name:          data.Name,
		Description:   data.Description,
		NutritionInfo: data.NutritionInfo,
		Images:        model.StringList(data.Images),
		Price:         data.Price,
		Unit:          data.Unit,
		Quantity:      data.Quantity,
		Status:        string(data.Status),
		PostedAt:      data.PostedAt,
	}
}
