package handler

import (
	"log/slog"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin-only management endpoints.
type AdminHandler struct {
	identityUC  usecase.IdentityUsecase
	catalogUC   usecase.CatalogUsecase
	reportingUC usecase.ReportingUsecase
	logger      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	identityUC usecase.IdentityUsecase,
	catalogUC usecase.CatalogUsecase,
	reportingUC usecase.ReportingUsecase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		identityUC:  identityUC,
		catalogUC:   catalogUC,
		reportingUC: reportingUC,
		logger:      logger,
	}
}

type createSellerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	ShopName string `json:"shopName" validate:"required"`
	Division string `json:"division" validate:"required"`
	District string `json:"district" validate:"required"`
	Area     string `json:"area" validate:"required"`
}

// CreateSeller handles POST /api/admin/sellers.
func (h *AdminHandler) CreateSeller(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req createSellerRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identityUC.CreateSeller(c.Request().Context(), caller, usecase.CreateSellerInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		ShopName: req.ShopName,
		Division: req.Division,
		District: req.District,
		Area:     req.Area,
	})
	if err != nil {
		return err
	}

	return response.Created(c, user)
}

// DeleteSeller handles DELETE /api/admin/sellers/:id. The id is the seller's
// user id; the profile and listings go with it.
func (h *AdminHandler) DeleteSeller(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.reportingUC.DeleteSeller(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// SellerProducts handles GET /api/admin/sellers/:id/products. The id is
// the seller's user id, matching the admin delete.
func (h *AdminHandler) SellerProducts(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	products, err := h.catalogUC.ListSellerProductsAsAdmin(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return response.OK(c, products)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteProductAsAdmin(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	stats, err := h.reportingUC.PlatformStats(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, stats)
}

// RecentReviews handles GET /api/admin/reviews.
func (h *AdminHandler) RecentReviews(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	reviews, err := h.reportingUC.RecentReviews(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, reviews)
}
