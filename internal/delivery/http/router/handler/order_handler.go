package handler

import (
	"log/slog"

	delctx "bazar/internal/delivery/context"
	"bazar/internal/delivery/http/response"
	"bazar/internal/domain/entity"
	"bazar/internal/errors"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler serves checkout and order management endpoints.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderUC usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
		logger:  logger,
	}
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unitPrice" validate:"required,gt=0"`
}

type placeOrderRequest struct {
	Items           []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
	Phone           string             `json:"phone" validate:"required"`
}

// Place handles POST /api/orders. Each line becomes its own order.
func (h *OrderHandler) Place(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, usecase.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	orders, err := h.orderUC.PlaceOrder(c.Request().Context(), caller, usecase.PlaceOrderInput{
		Items:           items,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
	})
	if err != nil {
		return err
	}

	return response.Created(c, orders)
}

// ListOwn handles GET /api/orders for the calling customer.
func (h *OrderHandler) ListOwn(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListOwnOrders(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, orders)
}

// ListForSeller handles GET /api/seller/orders.
func (h *OrderHandler) ListForSeller(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListSellerOrders(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return response.OK(c, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), caller, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return response.OK(c, order)
}

// Cancel handles PATCH /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), caller, orderID)
	if err != nil {
		return err
	}

	return response.OK(c, order)
}
