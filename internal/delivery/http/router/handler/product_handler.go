package handler

import (
	"log/slog"
	"strconv"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductHandler serves the public catalog and the seller's listing management.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalogUC usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// List handles GET /api/products. All filters arrive as query parameters
// and are optional.
func (h *ProductHandler) List(c echo.Context) error {
	filters := repository.ProductFilters{
		Search:   c.QueryParam("search"),
		Division: c.QueryParam("division"),
		District: c.QueryParam("district"),
		Area:     c.QueryParam("area"),
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domainerrors.NewValidationError("Invalid maxPrice.")
		}
		filters.MaxPrice = maxPrice
	}
	if raw := c.QueryParam("postedToday"); raw != "" {
		filters.PostedToday = raw == "true" || raw == "1"
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	return response.OK(c, products)
}

// Get handles GET /api/products/:id, returning the product with its reviews.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, detail)
}

// ListBySeller handles GET /api/sellers/:id/products.
func (h *ProductHandler) ListBySeller(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	products, err := h.catalogUC.ListSellerProducts(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, products)
}

// ListOwn handles GET /api/seller/products.
func (h *ProductHandler) ListOwn(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	products, err := h.catalogUC.ListOwnProducts(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, products)
}

type createProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	NutritionInfo string   `json:"nutritionInfo"`
	Images        []string `json:"images"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Unit          string   `json:"unit" validate:"required"`
	Quantity      int      `json:"quantity" validate:"required,gt=0"`
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), caller, usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		NutritionInfo: req.NutritionInfo,
		Images:        req.Images,
		Price:         req.Price,
		Unit:          req.Unit,
		Quantity:      req.Quantity,
	})
	if err != nil {
		return err
	}

	return response.Created(c, product)
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	NutritionInfo *string  `json:"nutritionInfo"`
	Images        []string `json:"images"`
	Price         *float64 `json:"price"`
	Unit          *string  `json:"unit"`
	Quantity      *int     `json:"quantity"`
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), caller, id, usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		NutritionInfo: req.NutritionInfo,
		Images:        req.Images,
		Price:         req.Price,
		Unit:          req.Unit,
		Quantity:      req.Quantity,
	})
	if err != nil {
		return err
	}

	return response.OK(c, product)
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// MarkOutOfStock handles POST /api/products/:id/out-of-stock.
func (h *ProductHandler) MarkOutOfStock(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogUC.MarkOutOfStock(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return response.OK(c, product)
}
