package handler

import (
	"log/slog"
	"net/http"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SellerHandler serves the public sellers directory, the seller's own
// profile and the reporting endpoints scoped to sellers.
type SellerHandler struct {
	sellerUC    usecase.SellerUsecase
	reportingUC usecase.ReportingUsecase
	logger      *slog.Logger
}

// NewSellerHandler creates a SellerHandler.
func NewSellerHandler(sellerUC usecase.SellerUsecase, reportingUC usecase.ReportingUsecase, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{
		sellerUC:    sellerUC,
		reportingUC: reportingUC,
		logger:      logger,
	}
}

// List handles GET /api/sellers.
func (h *SellerHandler) List(c echo.Context) error {
	sellers, err := h.sellerUC.ListSellers(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, sellers)
}

// Get handles GET /api/sellers/:id.
func (h *SellerHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	seller, err := h.sellerUC.GetSeller(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, seller)
}

// QRCode handles GET /api/sellers/:id/qrcode, returning a PNG pointing at
// the public shop page.
func (h *SellerHandler) QRCode(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.sellerUC.ShopQRCode(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Stats handles GET /api/sellers/:id/stats.
func (h *SellerHandler) Stats(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.reportingUC.SellerStats(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, stats)
}

type updateSellerProfileRequest struct {
	ShopName *string `json:"shopName"`
	Division *string `json:"division"`
	District *string `json:"district"`
	Area     *string `json:"area"`
}

// UpdateProfile handles PUT /api/sellers/profile.
func (h *SellerHandler) UpdateProfile(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req updateSellerProfileRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.sellerUC.UpdateOwnProfile(c.Request().Context(), caller, usecase.UpdateSellerProfileInput{
		ShopName: req.ShopName,
		Division: req.Division,
		District: req.District,
		Area:     req.Area,
	})
	if err != nil {
		return err
	}

	return response.OK(c, profile)
}

// Dashboard handles GET /api/seller/dashboard.
func (h *SellerHandler) Dashboard(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	dashboard, err := h.reportingUC.SellerDashboard(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, dashboard)
}
