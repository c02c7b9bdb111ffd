package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	recentReviewLimit  = 5
	recentProductLimit = 3
)

// reportingService implements the ReportingUsecase interface.
type reportingService struct {
	userRepo    repository.UserRepository
	sellerRepo  repository.SellerRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
}

// NewReportingService is the constructor for reportingService.
func NewReportingService(
	userRepo repository.UserRepository,
	sellerRepo repository.SellerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
	logger *slog.Logger,
) usecase.ReportingUsecase {
	return &reportingService{
		userRepo:    userRepo,
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// PlatformStats aggregates platform-wide counts. Admin only.
func (srv *reportingService) PlatformStats(ctx context.Context, caller usecase.Caller) (*usecase.PlatformStats, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbiddenRole
	}

	sellers, err := srv.userRepo.CountByRole(ctx, entity.RoleSeller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sellers")
	}
	customers, err := srv.userRepo.CountByRole(ctx, entity.RoleCustomer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count customers")
	}
	products, err := srv.productRepo.CountAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}
	reviews, err := srv.reviewRepo.CountAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	return &usecase.PlatformStats{
		Sellers:   sellers,
		Customers: customers,
		Products:  products,
		Reviews:   reviews,
	}, nil
}

// RecentReviews retrieves the most recent reviews platform-wide. Admin only.
func (srv *reportingService) RecentReviews(ctx context.Context, caller usecase.Caller) ([]*entity.Review, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbiddenRole
	}

	reviews, err := srv.reviewRepo.FindRecent(ctx, recentReviewLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent reviews")
	}

	return reviews, nil
}

// SellerDashboard aggregates the calling seller's shop activity.
func (srv *reportingService) SellerDashboard(ctx context.Context, caller usecase.Caller) (*usecase.SellerDashboard, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	active, err := srv.productRepo.CountActiveBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count active listings")
	}
	ordersToday, err := srv.orderRepo.CountDistinctBySellerSince(ctx, caller.ID, startOfDay(time.Now()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to count today's orders")
	}
	avgRating, err := srv.reviewRepo.AverageRatingBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to average rating")
	}
	products, err := srv.productRepo.FindBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent products")
	}
	if len(products) > recentProductLimit {
		products = products[:recentProductLimit]
	}

	return &usecase.SellerDashboard{
		ActiveListings: active,
		OrdersToday:    ordersToday,
		AverageRating:  avgRating,
		RecentProducts: products,
	}, nil
}

// SellerStats is the public per-seller summary, addressed by seller profile id.
func (srv *reportingService) SellerStats(ctx context.Context, sellerID uuid.UUID) (*usecase.SellerStats, error) {
	profile, err := srv.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller")
	}

	userID := profile.UserID

	products, err := srv.productRepo.CountBySeller(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}
	orders, err := srv.orderRepo.CountDistinctBySeller(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}
	avgRating, err := srv.reviewRepo.AverageRatingBySeller(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to average rating")
	}
	reviewCount, err := srv.reviewRepo.CountBySeller(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}
	recent, err := srv.reviewRepo.FindRecentBySeller(ctx, userID, recentReviewLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent reviews")
	}

	return &usecase.SellerStats{
		Products:      products,
		Orders:        orders,
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		RecentReviews: recent,
	}, nil
}

// DeleteSeller removes a seller account; dependent rows cascade. Admin only.
// The id addresses the seller's user record.
func (srv *reportingService) DeleteSeller(ctx context.Context, caller usecase.Caller, sellerUserID uuid.UUID) error {
	if !caller.IsAdmin() {
		return domainerrors.ErrForbiddenRole
	}

	user, err := srv.userRepo.FindByID(ctx, sellerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrSellerNotFound
		}
		return errors.Wrap(err, "failed to load user")
	}
	if user.Role != entity.RoleSeller {
		return domainerrors.NewBaseError(http.StatusBadRequest, "NOT_A_SELLER", "User is not a seller.", "")
	}

	if err := srv.userRepo.Delete(ctx, sellerUserID); err != nil {
		return err
	}

	srv.logger.Info("Seller deleted", "sellerUserID", sellerUserID, "adminID", caller.ID)

	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
