// Package validator checks transaction batches against their struct tags and
// converts failures into validation-kind domain errors.
package validator

import (
	"errors"
	"fmt"
	"reflect"

	"wecare/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator with decimal support.
func NewDefaultValidator() *DefaultValidator {
	v := validator.New()

	// Lets numeric tags such as gt=0 apply to decimal fields.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &DefaultValidator{v: v}
}

// Validate validates s and returns the first failure as a *model.DomainError.
func (v *DefaultValidator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate %T: %w", s, err)
	}

	fe := fieldErrs[0]
	return &model.DomainError{
		Kind:    kindFor(fe),
		Code:    codeFor(fe),
		Message: fmt.Sprintf("%s %s", fe.Namespace(), ValidationErrorMessage(fe)),
		Err:     err,
	}
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	return model.KindOf(err) == model.KindValidation
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}

func codeFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return model.ErrCodeMissingField
	}

	switch fe.Field() {
	case "Index":
		return model.ErrCodeProductNotFound
	case "Quantity":
		return model.ErrCodeInvalidQuantity
	case "NewCost":
		return model.ErrCodeInvalidCost
	default:
		return model.ErrCodeMissingField
	}
}

func kindFor(fe validator.FieldError) model.Kind {
	if fe.Field() == "Index" {
		return model.KindNotFound
	}
	return model.KindValidation
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}
