package impl

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

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

type identityFixtures struct {
	userRepo *mocksrepo.MockUserRepository
	hasher   *mockssvc.MockPasswordHasher
	tokens   *mockssvc.MockTokenService
	service  usecase.IdentityUsecase
}

func createTestIdentityService(t *testing.T) identityFixtures {
	t.Helper()

	userRepo := mocksrepo.NewMockUserRepository(t)
	hasher := mockssvc.NewMockPasswordHasher(t)
	tokens := mockssvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return identityFixtures{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		service:  NewIdentityService(userRepo, hasher, tokens, logger),
	}
}

func TestIdentityService_RegisterCustomer(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	ctx := context.Background()

	input := usecase.RegisterCustomerInput{
		FullName:       "Rahim Uddin",
		Email:          "rahim@example.com",
		Phone:          "01712345678",
		Password:       "secret123",
		DefaultAddress: "House 12, Road 5, Dhanmondi",
	}

	fx.hasher.EXPECT().Hash("secret123").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User"), "hashed").
		Run(func(ctx context.Context, user *entity.User, passwordHash string) {
			user.ID = uuid.New()
		}).
		Return(nil)

	user, err := fx.service.RegisterCustomer(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	require.NotNil(t, user.CustomerProfile)
	assert.Equal(t, input.DefaultAddress, user.CustomerProfile.DefaultAddress)
	assert.Nil(t, user.SellerProfile)
}

func TestIdentityService_RegisterCustomer_DuplicateEmail(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	ctx := context.Background()

	conflict := domainerrors.NewUniqueConflictError("email")
	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User"), "hashed").Return(conflict)

	_, err := fx.service.RegisterCustomer(ctx, usecase.RegisterCustomerInput{
		Email:    "taken@example.com",
		Password: "secret123",
	})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
	assert.Equal(t, "Email already exists.", appErr.Message())
}

func TestIdentityService_CreateSeller(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	ctx := context.Background()
	admin := usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin}

	input := usecase.CreateSellerInput{
		FullName: "Karim Mia",
		Email:    "karim@example.com",
		Phone:    "01898765432",
		Password: "secret123",
		ShopName: "Karim Fresh Produce",
		Division: "Dhaka",
		District: "Dhaka",
		Area:     "Mirpur",
	}

	fx.hasher.EXPECT().Hash("secret123").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User"), "hashed").Return(nil)

	user, err := fx.service.CreateSeller(ctx, admin, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, user.Role)
	require.NotNil(t, user.SellerProfile)
	assert.Equal(t, "Karim Fresh Produce", user.SellerProfile.ShopName)
	assert.Regexp(t, regexp.MustCompile(`^SHOP-[0-9A-Z]+$`), user.SellerProfile.ShopID)
}

func TestIdentityService_CreateSeller_NonAdmin(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	ctx := context.Background()

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleSeller} {
		caller := usecase.Caller{ID: uuid.New(), Role: role}
		_, err := fx.service.CreateSeller(ctx, caller, usecase.CreateSellerInput{})
		assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
	}
}

func TestIdentityService_Login(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "rahim@example.com", Role: entity.RoleSeller}

	fx.userRepo.EXPECT().FindByEmailOrPhone(mock.Anything, "rahim@example.com").Return(user, nil)
	fx.userRepo.EXPECT().PasswordHash(mock.Anything, userID).Return("stored-hash", nil)
	fx.hasher.EXPECT().Check("secret123", "stored-hash").Return(true)
	fx.tokens.EXPECT().GenerateToken(userID, entity.RoleSeller).Return("signed-token", nil)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Identifier: "rahim@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, "/seller/dashboard", out.RedirectTo)
	assert.Equal(t, user, out.User)
}

func TestIdentityService_Login_RedirectByRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role     entity.Role
		redirect string
	}{
		{entity.RoleAdmin, "/admin/dashboard"},
		{entity.RoleSeller, "/seller/dashboard"},
		{entity.RoleCustomer, "/"},
	}

	for _, tc := range cases {
		fx := createTestIdentityService(t)
		userID := uuid.New()
		user := &entity.User{ID: userID, Role: tc.role}

		fx.userRepo.EXPECT().FindByEmailOrPhone(mock.Anything, mock.Anything).Return(user, nil)
		fx.userRepo.EXPECT().PasswordHash(mock.Anything, userID).Return("hash", nil)
		fx.hasher.EXPECT().Check(mock.Anything, "hash").Return(true)
		fx.tokens.EXPECT().GenerateToken(userID, tc.role).Return("token", nil)

		out, err := fx.service.Login(context.Background(), usecase.LoginInput{Identifier: "x", Password: "y"})

		require.NoError(t, err)
		assert.Equal(t, tc.redirect, out.RedirectTo)
	}
}

func TestIdentityService_Login_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)

	fx.userRepo.EXPECT().FindByEmailOrPhone(mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{Identifier: "ghost@example.com", Password: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestIdentityService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByEmailOrPhone(mock.Anything, mock.Anything).
		Return(&entity.User{ID: userID, Role: entity.RoleCustomer}, nil)
	fx.userRepo.EXPECT().PasswordHash(mock.Anything, userID).Return("stored-hash", nil)
	fx.hasher.EXPECT().Check("wrong", "stored-hash").Return(false)

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{Identifier: "rahim@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestIdentityService_UpdateAccount_MergeRules(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	caller := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	stored := &entity.User{ID: caller.ID, FullName: "Old Name", Phone: "01711111111"}
	fx.userRepo.EXPECT().FindByID(mock.Anything, caller.ID).Return(stored, nil)
	fx.userRepo.EXPECT().Update(mock.Anything, stored).Return(nil)

	newName := "New Name"
	empty := ""
	user, err := fx.service.UpdateAccount(context.Background(), caller, usecase.UpdateAccountInput{
		FullName: &newName,
		Phone:    &empty,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "01711111111", user.Phone, "empty value keeps the previous phone")
}

func TestIdentityService_Me_NotFound(t *testing.T) {
	t.Parallel()

	fx := createTestIdentityService(t)
	caller := usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer}

	fx.userRepo.EXPECT().FindByID(mock.Anything, caller.ID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Me(context.Background(), caller)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestGenerateShopID_Shape(t *testing.T) {
	t.Parallel()

	id := generateShopID()

	assert.Regexp(t, regexp.MustCompile(`^SHOP-[0-9A-Z]+$`), id)
}
