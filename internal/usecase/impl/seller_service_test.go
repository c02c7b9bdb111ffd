package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazar/config"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	mocksrepo "bazar/internal/mocks/repository"
	mockssvc "bazar/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sellerFixtures struct {
	sellerRepo *mocksrepo.MockSellerRepository
	qrService  *mockssvc.MockQRCodeService
	service    usecase.SellerUsecase
}

func createTestSellerService(t *testing.T) sellerFixtures {
	t.Helper()

	sellerRepo := mocksrepo.NewMockSellerRepository(t)
	qrService := mockssvc.NewMockQRCodeService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Shop: &config.ShopConfig{BaseURL: "https://bazar.example.com/"},
	}

	return sellerFixtures{
		sellerRepo: sellerRepo,
		qrService:  qrService,
		service:    NewSellerService(sellerRepo, qrService, cfg, logger),
	}
}

func TestSellerService_ListSellers(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)

	fx.sellerRepo.EXPECT().FindAll(mock.Anything).
		Return([]*entity.SellerProfile{{ID: uuid.New(), ShopName: "Karim Fresh Produce"}}, nil)

	sellers, err := fx.service.ListSellers(context.Background())

	require.NoError(t, err)
	assert.Len(t, sellers, 1)
}

func TestSellerService_GetSeller_NotFound(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)
	id := uuid.New()

	fx.sellerRepo.EXPECT().FindByID(mock.Anything, id).Return(nil, repository.ErrSellerNotFound)

	_, err := fx.service.GetSeller(context.Background(), id)

	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestSellerService_UpdateOwnProfile_MergeRules(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)
	seller := usecase.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	stored := &entity.SellerProfile{
		ID:       uuid.New(),
		UserID:   seller.ID,
		ShopName: "Karim Fresh Produce",
		ShopID:   "SHOP-MB3K2F1A",
		Division: "Dhaka",
		District: "Dhaka",
		Area:     "Mirpur",
	}
	fx.sellerRepo.EXPECT().FindByUserID(mock.Anything, seller.ID).Return(stored, nil)
	fx.sellerRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	emptyName := ""
	newArea := "Uttara"
	profile, err := fx.service.UpdateOwnProfile(context.Background(), seller, usecase.UpdateSellerProfileInput{
		ShopName: &emptyName,
		Area:     &newArea,
	})

	require.NoError(t, err)
	assert.Equal(t, "Karim Fresh Produce", profile.ShopName, "empty shop name keeps the previous value")
	assert.Equal(t, "Uttara", profile.Area)
	assert.Equal(t, "SHOP-MB3K2F1A", profile.ShopID, "shop id never changes")
}

func TestSellerService_UpdateOwnProfile_NonSeller(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)
	customer := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	_, err := fx.service.UpdateOwnProfile(context.Background(), customer, usecase.UpdateSellerProfileInput{})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestSellerService_ShopQRCode(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)
	profileID := uuid.New()

	fx.sellerRepo.EXPECT().FindByID(mock.Anything, profileID).
		Return(&entity.SellerProfile{ID: profileID}, nil)
	fx.qrService.EXPECT().GenerateShopQR("https://bazar.example.com/seller/"+profileID.String()).
		Return([]byte{0x89, 0x50, 0x4E, 0x47}, nil)

	png, err := fx.service.ShopQRCode(context.Background(), profileID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestSellerService_ShopQRCode_SellerNotFound(t *testing.T) {
	t.Parallel()

	fx := createTestSellerService(t)
	profileID := uuid.New()

	fx.sellerRepo.EXPECT().FindByID(mock.Anything, profileID).Return(nil, repository.ErrSellerNotFound)

	_, err := fx.service.ShopQRCode(context.Background(), profileID)

	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}
