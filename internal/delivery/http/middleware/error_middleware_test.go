package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazar/config"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newErrorTestMiddleware(env string) *ErrorMiddleware {
	cfg := &config.Config{}
	cfg.Env.Env = env

	return NewErrorMiddleware(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func recordError(mw *ErrorMiddleware, err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	t.Parallel()

	mw := newErrorTestMiddleware("production")
	rec := recordError(mw, errors.WithStack(domainerrors.ErrProductNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Product not found."}`, rec.Body.String())
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	t.Parallel()

	mw := newErrorTestMiddleware("production")
	rec := recordError(mw, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message": "Method Not Allowed"}`, rec.Body.String())
}

func TestErrorMiddleware_UnknownError_Production(t *testing.T) {
	t.Parallel()

	mw := newErrorTestMiddleware("production")
	rec := recordError(mw, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message": "Internal server error."}`, rec.Body.String())
}

func TestErrorMiddleware_UnknownError_DevIncludesDetail(t *testing.T) {
	t.Parallel()

	mw := newErrorTestMiddleware("local")
	rec := recordError(mw, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error.")
	assert.Contains(t, rec.Body.String(), "pq: connection refused")
}
