// Package http hosts the echo HTTP server fronting the marketplace API.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"bazar/config"
	"bazar/internal/delivery"
	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router"
	"bazar/internal/delivery/http/validator"
	"bazar/internal/domain/lifecycle"
	"bazar/internal/errors"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

// HTTPParams defines the required parameters
type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	Router          router.Router
	ErrorMiddleware *middleware.ErrorMiddleware
	RequestID       *middleware.RequestIDMiddleware
	RequestLogger   *middleware.LoggerMiddleware
}

type server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer builds the echo instance with the middleware chain and route
// table, and hooks shutdown into the application lifecycle.
func NewServer(params HTTPParams) delivery.Delivery {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	e.Use(params.RequestID.Handle)
	e.Use(params.RequestLogger.Handle)
	e.Use(echomw.Recover())
	corsConfig := echomw.CORSConfig{AllowCredentials: true}
	if params.Config.Shop != nil && params.Config.Shop.BaseURL != "" {
		corsConfig.AllowOrigins = []string{params.Config.Shop.BaseURL}
	}
	e.Use(echomw.CORSWithConfig(corsConfig))

	params.Router.RegisterRoutes(e)

	srv := &server{
		echo:   e,
		cfg:    params.Config,
		logger: params.Logger,
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.WithStack(e.Shutdown(shutdownCtx))
		},
	})

	return srv
}

// Serve starts the HTTP listener and blocks until shutdown.
func (s *server) Serve(ctx context.Context) error {
	timeouts := s.cfg.HTTP.Timeouts
	s.echo.Server.ReadTimeout = timeouts.ReadTimeout
	s.echo.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	s.echo.Server.WriteTimeout = timeouts.WriteTimeout
	s.echo.Server.IdleTimeout = timeouts.IdleTimeout

	addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve HTTP")
	}

	return nil
}
