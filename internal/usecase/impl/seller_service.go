package impl

import (
	"context"
	"log/slog"
	"strings"

	"bazar/config"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	sellerRepo repository.SellerRepository
	qrService  service.QRCodeService
	baseURL    string
	logger     *slog.Logger
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(
	sellerRepo repository.SellerRepository,
	qrService service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SellerUsecase {
	baseURL := ""
	if cfg.Shop != nil {
		baseURL = strings.TrimRight(cfg.Shop.BaseURL, "/")
	}

	return &sellerService{
		sellerRepo: sellerRepo,
		qrService:  qrService,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// ListSellers retrieves every seller profile with owner names.
func (srv *sellerService) ListSellers(ctx context.Context) ([]*entity.SellerProfile, error) {
	sellers, err := srv.sellerRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	return sellers, nil
}

// GetSeller retrieves one seller profile by its id.
func (srv *sellerService) GetSeller(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error) {
	profile, err := srv.sellerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller")
	}

	return profile, nil
}

// UpdateOwnProfile applies a partial update to the calling seller's shop.
func (srv *sellerService) UpdateOwnProfile(ctx context.Context, caller usecase.Caller, input usecase.UpdateSellerProfileInput) (*entity.SellerProfile, error) {
	if !caller.IsSeller() {
		return nil, domainerrors.ErrForbiddenRole
	}

	profile, err := srv.sellerRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller profile")
	}

	if input.ShopName != nil && *input.ShopName != "" {
		profile.ShopName = *input.ShopName
	}
	if input.Division != nil {
		profile.Division = *input.Division
	}
	if input.District != nil {
		profile.District = *input.District
	}
	if input.Area != nil {
		profile.Area = *input.Area
	}

	if err := srv.sellerRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	srv.logger.Info("Seller profile updated", "sellerID", profile.ID)

	return profile, nil
}

// ShopQRCode renders the seller's public shop URL as a PNG QR code.
func (srv *sellerService) ShopQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	profile, err := srv.sellerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}
		return nil, errors.Wrap(err, "failed to load seller")
	}

	png, err := srv.qrService.GenerateShopQR(srv.baseURL + "/seller/" + profile.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to render shop QR code")
	}

	return png, nil
}
