package impl

import (
	"context"
	"log/slog"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	sellerRepo  repository.SellerRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	sellerRepo repository.SellerRepository,
	reviewRepo repository.ReviewRepository,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// ListProducts retrieves the public catalog with filters applied.
func (srv *catalogService) ListProducts(ctx context.Context, filters repository.ProductFilters) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindWithFilters(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct retrieves one product with its seller and review thread.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*usecase.ProductDetail, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to load product")
	}

	reviews, err := srv.reviewRepo.FindByProduct(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product reviews")
	}

	return &usecase.ProductDetail{Product: product, Reviews: reviews}, nil
}

// ListSellerProducts retrieves the public listings of one seller, addressed
// by seller profile id.
func (srv *catalogService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	profile, err := srv.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller")
	}

	products, err := srv.productRepo.FindBySeller(ctx, profile.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}

// ListSellerProductsAsAdmin retrieves any seller's listings, addressed by
// the seller's user id.
func (srv *catalogService) ListSellerProductsAsAdmin(ctx context.Context, caller usecase.Caller, sellerUserID uuid.UUID) ([]*entity.Product, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbiddenRole
	}

	if _, err := srv.sellerRepo.FindByUserID(ctx, sellerUserID); err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller")
	}

	products, err := srv.productRepo.FindBySeller(ctx, sellerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}

// ListOwnProducts retrieves the calling seller's listings.
func (srv *catalogService) ListOwnProducts(ctx context.Context, caller usecase.Caller) ([]*entity.Product, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	products, err := srv.productRepo.FindBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own products")
	}

	return products, nil
}

// CreateProduct publishes a new listing for the calling seller.
func (srv *catalogService) CreateProduct(ctx context.Context, caller usecase.Caller, input usecase.CreateProductInput) (*entity.Product, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}
	if input.Price < 1 {
		return nil, domainerrors.NewValidationError("Price must be at least 1.")
	}
	if input.Quantity < 1 {
		return nil, domainerrors.NewValidationError("Quantity must be at least 1.")
	}

	product := &entity.Product{
		SellerID:      caller.ID,
		Name:          input.Name,
		Description:   input.Description,
		NutritionInfo: input.NutritionInfo,
		Images:        input.Images,
		Price:         input.Price,
		Unit:          input.Unit,
		Quantity:      input.Quantity,
		Status:        entity.ProductInStock,
		PostedAt:      time.Now(),
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.logger.Info("Product created", "productID", product.ID, "sellerID", caller.ID)

	return product, nil
}

// UpdateProduct applies a partial update to an owned listing. A non-empty
// image list replaces the stored one wholesale; nutrition info is replaced
// only by a non-empty value.
func (srv *catalogService) UpdateProduct(ctx context.Context, caller usecase.Caller, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	product, err := srv.productRepo.FindOwnedByID(ctx, id, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to load product")
	}

	if input.Name != nil && *input.Name != "" {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.NutritionInfo != nil && *input.NutritionInfo != "" {
		product.NutritionInfo = *input.NutritionInfo
	}
	if len(input.Images) > 0 {
		product.Images = input.Images
	}
	if input.Price != nil {
		if *input.Price < 1 {
			return nil, domainerrors.NewValidationError("Price must be at least 1.")
		}
		product.Price = *input.Price
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, domainerrors.NewValidationError("Quantity cannot be negative.")
		}
		product.Quantity = *input.Quantity
		if product.Quantity == 0 {
			product.Status = entity.ProductOutOfStock
		} else {
			product.Status = entity.ProductInStock
		}
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes an owned listing.
func (srv *catalogService) DeleteProduct(ctx context.Context, caller usecase.Caller, id uuid.UUID) error {
	if !caller.IsSeller() {
		return domainerrors.ErrForbiddenRole
	}

	if err := srv.productRepo.Delete(ctx, id, caller.ID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		return err
	}

	srv.logger.Info("Product deleted", "productID", id, "sellerID", caller.ID)

	return nil
}

// DeleteProductAsAdmin removes any listing regardless of owner.
func (srv *catalogService) DeleteProductAsAdmin(ctx context.Context, caller usecase.Caller, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return domainerrors.ErrForbiddenRole
	}

	if err := srv.productRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		return err
	}

	srv.logger.Info("Product deleted by admin", "productID", id, "adminID", caller.ID)

	return nil
}

// MarkOutOfStock manually flips an owned listing to out_of_stock.
func (srv *catalogService) MarkOutOfStock(ctx context.Context, caller usecase.Caller, id uuid.UUID) (*entity.Product, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	product, err := srv.productRepo.FindOwnedByID(ctx, id, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to load product")
	}

	product.Status = entity.ProductOutOfStock
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
