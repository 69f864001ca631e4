// Package validator adapts go-playground/validator to echo.Validator for
// plain request-shape checks. Registration and login rules live in the
// usecase validation pipeline, not here.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	domainerrors "handly/internal/domain/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their json names. The
// non-standard notblank tag is available alongside the baked-in ones.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Validate returns domainerrors.ValidationErrors so failures render like any
// other validation failure.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed
	}

	out := make(domainerrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		category := domainerrors.CategoryFormat
		message := domainerrors.MessageMalformed
		if fe.Tag() == "required" {
			category = domainerrors.CategoryMissing
			message = domainerrors.MessageMissing
		}

		out = append(out, domainerrors.ValidationError{
			Field:    fe.Field(),
			Code:     strings.ToUpper(fe.Tag()),
			Message:  message,
			Category: category,
		})
	}

	return out.Sorted()
}
