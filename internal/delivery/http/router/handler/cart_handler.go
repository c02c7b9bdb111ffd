package handler

import (
	"log/slog"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CartHandler serves the customer's cart endpoints.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(cartUC usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUC: cartUC,
		logger: logger,
	}
}

// View handles GET /api/cart.
func (h *CartHandler) View(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	items, err := h.cartUC.ViewCart(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, items)
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// Add handles POST /api/cart. Adding a product already in the cart
// accumulates its quantity.
func (h *CartHandler) Add(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.cartUC.AddToCart(c.Request().Context(), caller, usecase.AddToCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}

	return response.Created(c, item)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// UpdateQuantity handles PUT /api/cart/:id.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.cartUC.UpdateQuantity(c.Request().Context(), caller, itemID, req.Quantity)
	if err != nil {
		return err
	}

	return response.OK(c, item)
}

// Remove handles DELETE /api/cart/:id.
func (h *CartHandler) Remove(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), caller, itemID); err != nil {
		return err
	}

	return response.NoContent(c)
}
