// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// Role-based landing pages returned as the login redirect hint.
const (
	redirectAdmin    = "/admin/dashboard"
	redirectSeller   = "/seller/dashboard"
	redirectCustomer = "/"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.IdentityUsecase {
	return &identityService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterCustomer creates a customer account with its profile.
func (srv *identityService) RegisterCustomer(ctx context.Context, input usecase.RegisterCustomerInput) (*entity.User, error) {
	srv.logger.Info("Registering customer", "email", input.Email)

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     entity.RoleCustomer,
		CustomerProfile: &entity.CustomerProfile{
			DefaultAddress: input.DefaultAddress,
		},
	}

	if err := srv.userRepo.Create(ctx, user, hash); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateSeller opens a new shop: a seller account plus its profile with a
// generated shop id. Admin only.
func (srv *identityService) CreateSeller(ctx context.Context, caller usecase.Caller, input usecase.CreateSellerInput) (*entity.User, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbiddenRole
	}

	srv.logger.Info("Creating seller", "email", input.Email, "shopName", input.ShopName)

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     entity.RoleSeller,
		SellerProfile: &entity.SellerProfile{
			ShopName: input.ShopName,
			ShopID:   generateShopID(),
			Division: input.Division,
			District: input.District,
			Area:     input.Area,
		},
	}

	if err := srv.userRepo.Create(ctx, user, hash); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates by email or phone and issues a session token.
func (srv *identityService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmailOrPhone(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "failed to look up user")
	}

	hash, err := srv.userRepo.PasswordHash(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load password hash")
	}
	if !srv.hasher.Check(input.Password, hash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.logger.Info("User logged in", "userID", user.ID, "role", user.Role)

	return &usecase.LoginOutput{
		Token:      token,
		User:       user,
		RedirectTo: redirectFor(user.Role),
	}, nil
}

// Me returns the session user with the linked role profile.
func (srv *identityService) Me(ctx context.Context, caller usecase.Caller) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// UpdateAccount applies a partial update to the caller's own account.
// A present, non-empty value wins; anything else keeps the previous value.
func (srv *identityService) UpdateAccount(ctx context.Context, caller usecase.Caller, input usecase.UpdateAccountInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to load user")
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Phone != nil && *input.Phone != "" {
		user.Phone = *input.Phone
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// generateShopID derives a shop id from the current unix millisecond clock,
// e.g. "SHOP-MB3K2F1A".
func generateShopID() string {
	return "SHOP-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

func redirectFor(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return redirectAdmin
	case entity.RoleSeller:
		return redirectSeller
	default:
		return redirectCustomer
	}
}
