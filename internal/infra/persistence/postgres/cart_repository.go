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

// cartRepository implements the domain.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByCustomer retrieves a customer's cart items with products loaded.
func (repo *cartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CartItem, error) {
	var items []*model.CartItemModel
	err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	out := make([]*entity.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, toCartItemDomain(item))
	}

	return out, nil
}

// FindByCustomerAndProduct retrieves the single row for a (customer, product) pair.
func (repo *cartRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	err := repo.db.WithContext(ctx).
		First(&itemM, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}
		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return toCartItemDomain(&itemM), nil
}

// FindOwnedByID retrieves a cart item only if it belongs to the customer.
func (repo *cartRepository) FindOwnedByID(ctx context.Context, id, customerID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	err := repo.db.WithContext(ctx).
		First(&itemM, "id = ? AND customer_id = ?", id, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}
		return nil, errors.Wrap(err, "failed to find owned cart item")
	}

	return toCartItemDomain(&itemM), nil
}

// Create persists a new cart item.
func (repo *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid cart reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// Update persists an existing cart item's quantity.
func (repo *cartRepository) Update(ctx context.Context, item *entity.CartItem) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", item.ID).
		Update("quantity", item.Quantity)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// Delete removes a cart item owned by the customer.
func (repo *cartRepository) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.CartItemModel{}, "id = ? AND customer_id = ?", id, customerID)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// DeleteByCustomer empties a customer's cart.
func (repo *cartRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.CartItemModel{}, "customer_id = ?", customerID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

// toCartItemDomain converts a GORM CartItemModel to a domain CartItem entity.
func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
		Product:    toProductDomain(data.Product),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromCartItemDomain converts a domain CartItem entity to a GORM CartItemModel.
func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	if data == nil {
		return nil
	}

	return &model.CartItemModel{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
	}
}
