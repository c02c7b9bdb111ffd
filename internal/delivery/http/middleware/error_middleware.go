package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"bazar/config"
	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/errors"

	"github.com/labstack/echo/v4"
)

const productionEnv = "production"

// ErrorMiddleware renders every handler error as the JSON error envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
	env    string
}

// NewErrorMiddleware creates an ErrorMiddleware.
func NewErrorMiddleware(cfg *config.Config, logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		env:    cfg.Env.Env,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Application
// errors keep their status and message; everything else becomes a logged
// 500 whose detail only leaks outside production.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := delctx.Logger(c, m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("errorCode", appErr.ErrorCode()),
				slog.String("error", err.Error()),
				slog.String("path", c.Request().URL.Path),
			)
		}

		if respErr := response.Error(c, appErr.HTTPCode(), appErr.Message()); respErr != nil {
			logger.Error("Failed to write error response", slog.String("error", respErr.Error()))
		}

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if respErr := response.Error(c, httpErr.Code, fmt.Sprintf("%v", httpErr.Message)); respErr != nil {
			logger.Error("Failed to write error response", slog.String("error", respErr.Error()))
		}

		return
	}

	logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	message := "Internal server error."
	var respErr error
	if m.env != productionEnv {
		respErr = response.ErrorWithDetail(c, http.StatusInternalServerError, message, err.Error())
	} else {
		respErr = response.Error(c, http.StatusInternalServerError, message)
	}
	if respErr != nil {
		logger.Error("Failed to write error response", slog.String("error", respErr.Error()))
	}
}
