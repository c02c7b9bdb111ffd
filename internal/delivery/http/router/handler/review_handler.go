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

// ReviewHandler serves product review endpoints.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewUC usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

type createReviewRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	caller, err := delctx.Caller(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), caller, usecase.CreateReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}

	return response.Created(c, review)
}

// ListByProduct handles GET /api/products/:id/reviews.
func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.OK(c, reviews)
}
