// Package context defines the keys and helpers for values carried through
// the request context by the HTTP middleware chain.
package context

import (
	"log/slog"

	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ContextKey is the type used for request-scoped values.
type ContextKey string

const (
	// KeyRequestID carries the request correlation id.
	KeyRequestID ContextKey = "requestID"
	// KeyLogger carries the request-scoped logger.
	KeyLogger ContextKey = "logger"
	// KeyCaller carries the authenticated caller.
	KeyCaller ContextKey = "caller"
)

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, id string) {
	c.Set(string(KeyRequestID), id)
}

// RequestID returns the request id, or an empty string when absent.
func RequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetLogger stores a request-scoped logger on the echo context.
func SetLogger(c echo.Context, logger *slog.Logger) {
	c.Set(string(KeyLogger), logger)
}

// Logger returns the request-scoped logger, falling back to the given one
// when the middleware has not run.
func Logger(c echo.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := c.Get(string(KeyLogger)).(*slog.Logger); ok {
		return logger
	}

	return fallback
}

// SetCaller stores the authenticated caller on the echo context.
func SetCaller(c echo.Context, caller usecase.Caller) {
	c.Set(string(KeyCaller), caller)
}

// Caller returns the authenticated caller. It fails with an unauthenticated
// error when the session middleware has not resolved one.
func Caller(c echo.Context) (usecase.Caller, error) {
	caller, ok := c.Get(string(KeyCaller)).(usecase.Caller)
	if !ok {
		return usecase.Caller{}, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return caller, nil
}
