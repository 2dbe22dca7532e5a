// Package validator wires go-playground validation into Echo.
package validator

import (
	domainerrors "shophub/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator over struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the validator used by the HTTP server.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the bound request payload against its validate tags.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
