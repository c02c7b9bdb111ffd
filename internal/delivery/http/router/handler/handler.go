// Package handler contains the HTTP handlers binding requests to use cases.
package handler

import (
	"fmt"

	domainerrors "bazar/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// parseUUIDParam parses a path parameter as a UUID, failing with a 422.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError(fmt.Sprintf("Invalid %s.", name))
	}

	return id, nil
}
