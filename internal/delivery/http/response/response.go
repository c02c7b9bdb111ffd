// Package response holds the JSON envelope helpers shared by the handlers
// and the error middleware.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error envelope returned on every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// OK writes a 200 response with the given payload.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// NoContent writes a 204 response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes the error envelope with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Message: message})
}

// ErrorWithDetail writes the error envelope including the detail field.
func ErrorWithDetail(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, ErrorBody{Message: message, Detail: detail})
}
