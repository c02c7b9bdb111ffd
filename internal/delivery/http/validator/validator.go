// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request payloads.
package validator

import (
	"fmt"

	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs against their validate tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Failures surface as a 422 carrying the
// first offending field so the error middleware can render the envelope.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]

		return domainerrors.NewValidationError(
			fmt.Sprintf("Field '%s' failed on the '%s' rule.", first.Field(), first.Tag()),
		)
	}

	return domainerrors.ErrValidationFailed
}
