package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bazar/config"
	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/response"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves account registration and session endpoints.
type AuthHandler struct {
	identityUC usecase.IdentityUsecase
	cfg        *config.Config
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(identityUC usecase.IdentityUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identityUC: identityUC,
		cfg:        cfg,
		logger:     logger,
	}
}

type registerCustomerRequest struct {
	FullName       string `json:"fullName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Password       string `json:"password" validate:"required,min=6"`
	DefaultAddress string `json:"defaultAddress"`
}

// RegisterCustomer handles POST /api/auth/customer/register.
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identityUC.RegisterCustomer(c.Request().Context(), usecase.RegisterCustomerInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		DefaultAddress: req.DefaultAddress,
	})
	if err != nil {
		return err
	}

	return response.Created(c, user)
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	User       any    `json:"user"`
	RedirectTo string `json:"redirectTo"`
}

// Login handles POST /api/auth/login. The session token travels in an
// HTTP-only cookie; the body carries the user and a redirect hint.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.identityUC.Login(c.Request().Context(), usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(out.Token, h.cfg.Session.TTL))

	return response.OK(c, loginResponse{User: out.User, RedirectTo: out.RedirectTo})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))

	return response.OK(c, map[string]string{"message": "Logged out."})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	user, err := h.identityUC.Me(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, user)
}

type updateAccountRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

// UpdateMe handles PUT /api/auth/me.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.identityUC.UpdateAccount(c.Request().Context(), caller, usecase.UpdateAccountInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return response.OK(c, user)
}

// sessionCookie builds the session cookie. A non-positive maxAge expires it.
func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Env.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}
}
