// Package middleware contains the HTTP middleware chain: session
// authentication, role guards, request correlation, request logging and the
// error envelope renderer.
package middleware

import (
	"strings"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "bazar_session"

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the session token into an authenticated caller.
type AuthMiddleware struct {
	tokens service.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(tokens service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the session cookie, falling back to an
// Authorization bearer header, and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.extractToken(c)
		if token == "" {
			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		delctx.SetCaller(c, usecase.Caller{ID: claims.UserID, Role: claims.Role})

		return next(c)
	}
}

// RequireRole rejects callers whose role is not in the allowed set. It must
// run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := delctx.Caller(c)
			if err != nil {
				return err
			}

			for _, role := range roles {
				if caller.Role == role {
					return next(c)
				}
			}

			return errors.WithStack(domainerrors.ErrForbiddenRole)
		}
	}
}

// extractToken prefers the session cookie and falls back to the
// Authorization header for non-browser clients.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}

	return ""
}
