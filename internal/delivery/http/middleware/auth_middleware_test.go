package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	mockssvc "bazar/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, mutate func(*http.Request)) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func TestAuthMiddleware_Authenticate_Cookie(t *testing.T) {
	t.Parallel()

	tokens := mockssvc.NewMockTokenService(t)
	userID := uuid.New()
	tokens.EXPECT().ValidateToken("session-token").
		Return(&service.SessionClaims{UserID: userID, Role: entity.RoleCustomer}, nil)

	mw := NewAuthMiddleware(tokens)
	c := newAuthTestContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-token"})
	})

	var caller usecase.Caller
	err := mw.Authenticate(func(c echo.Context) error {
		var callerErr error
		caller, callerErr = delctx.Caller(c)

		return callerErr
	})(c)

	require.NoError(t, err)
	assert.Equal(t, userID, caller.ID)
	assert.Equal(t, entity.RoleCustomer, caller.Role)
}

func TestAuthMiddleware_Authenticate_BearerFallback(t *testing.T) {
	t.Parallel()

	tokens := mockssvc.NewMockTokenService(t)
	userID := uuid.New()
	tokens.EXPECT().ValidateToken("header-token").
		Return(&service.SessionClaims{UserID: userID, Role: entity.RoleSeller}, nil)

	mw := NewAuthMiddleware(tokens)
	c := newAuthTestContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	})

	err := mw.Authenticate(func(c echo.Context) error {
		caller, callerErr := delctx.Caller(c)
		require.NoError(t, callerErr)
		assert.Equal(t, entity.RoleSeller, caller.Role)

		return nil
	})(c)

	require.NoError(t, err)
}

func TestAuthMiddleware_Authenticate_MissingToken(t *testing.T) {
	t.Parallel()

	tokens := mockssvc.NewMockTokenService(t)
	mw := NewAuthMiddleware(tokens)
	c := newAuthTestContext(t, nil)

	err := mw.Authenticate(func(c echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := mockssvc.NewMockTokenService(t)
	tokens.EXPECT().ValidateToken("expired").Return(nil, errors.New("token is expired"))

	mw := NewAuthMiddleware(tokens)
	c := newAuthTestContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	})

	err := mw.Authenticate(func(c echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	t.Parallel()

	tokens := mockssvc.NewMockTokenService(t)
	mw := NewAuthMiddleware(tokens)

	next := func(c echo.Context) error { return nil }

	t.Run("allows matching role", func(t *testing.T) {
		c := newAuthTestContext(t, nil)
		delctx.SetCaller(c, usecase.Caller{ID: uuid.New(), Role: entity.RoleAdmin})

		err := mw.RequireRole(entity.RoleAdmin)(next)(c)

		assert.NoError(t, err)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		c := newAuthTestContext(t, nil)
		delctx.SetCaller(c, usecase.Caller{ID: uuid.New(), Role: entity.RoleCustomer})

		err := mw.RequireRole(entity.RoleAdmin)(next)(c)

		assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
	})

	t.Run("rejects unauthenticated", func(t *testing.T) {
		c := newAuthTestContext(t, nil)

		err := mw.RequireRole(entity.RoleAdmin)(next)(c)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}
