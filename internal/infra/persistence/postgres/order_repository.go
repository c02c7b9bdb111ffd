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
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order with its items in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid order reference")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		if i < len(order.Items) {
			order.Items[i].ID = itemM.ID
			order.Items[i].OrderID = orderM.ID
		}
	}

	return nil
}

// FindByID retrieves an order with its items and products loaded.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByCustomer retrieves a customer's orders, newest first.
func (repo *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}

	return toOrderDomainSlice(orders), nil
}

// FindBySeller retrieves orders containing at least one of the seller's
// products, newest first. The preload condition trims each order's items to
// the seller's own lines.
func (repo *orderRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	sellerProducts := repo.db.
		Model(&model.ProductModel{}).
		Select("id").
		Where("seller_id = ?", sellerID)

	var orders []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", "product_id IN (?)", sellerProducts).
		Preload("Items.Product").
		Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("order_id").
			Where("product_id IN (?)", sellerProducts)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	return toOrderDomainSlice(orders), nil
}

// UpdateStatus sets the delivery status of an order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CountAll returns the total number of orders.
func (repo *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// CountDistinctBySeller returns how many orders include the seller's products.
func (repo *orderRepository) CountDistinctBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	return repo.countDistinctBySeller(ctx, sellerID, time.Time{})
}

// CountDistinctBySellerSince is CountDistinctBySeller restricted to orders
// created at or after the given time.
func (repo *orderRepository) CountDistinctBySellerSince(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error) {
	return repo.countDistinctBySeller(ctx, sellerID, since)
}

func (repo *orderRepository) countDistinctBySeller(ctx context.Context, sellerID uuid.UUID, since time.Time) (int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID)

	if !since.IsZero() {
		query = query.
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.created_at >= ?", since)
	}

	var count int64
	err := query.Distinct("order_items.order_id").Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count seller orders")
	}

	return count, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toOrderItemDomain(itemM))
	}

	return &entity.Order{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		Status:          entity.OrderStatus(data.Status),
		PaymentMethod:   data.PaymentMethod,
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		Total:           data.Total,
		DeliveryAddress: data.DeliveryAddress,
		Phone:           data.Phone,
		ReceiptURL:      data.ReceiptURL,
		Items:           items,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toOrderDomainSlice(data []*model.OrderModel) []*entity.Order {
	out := make([]*entity.Order, 0, len(data))
	for _, o := range data {
		out = append(out, toOrderDomain(o))
	}

	return out
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		Product:   toProductDomain(data.Product),
		CreatedAt: data.CreatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		Status:          string(data.Status),
		PaymentMethod:   data.PaymentMethod,
		PaymentStatus:   string(data.PaymentStatus),
		Total:           data.Total,
		DeliveryAddress: data.DeliveryAddress,
		Phone:           data.Phone,
		ReceiptURL:      data.ReceiptURL,
		Items:           items,
	}
}
