package middleware

import (
	"log/slog"

	delctx "bazar/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID is the correlation header echoed back on every response.
const HeaderRequestID = "X-Request-Id"

// RequestIDMiddleware assigns each request a correlation id and a child
// logger carrying it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a RequestIDMiddleware.
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Handle reuses the caller-provided request id when present, otherwise
// generates one, and stores a request-scoped logger on the context.
func (m *RequestIDMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Response().Header().Set(HeaderRequestID, requestID)
		delctx.SetRequestID(c, requestID)
		delctx.SetLogger(c, m.logger.With(slog.String("requestId", requestID)))

		return next(c)
	}
}
