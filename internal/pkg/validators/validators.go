// Package validators registers the custom validation tags used by domain entities.
package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator with the custom tags registered:
// notblank, decimal_gt0 and decimal_gte0.
func New() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", NotBlank)
	_ = validate.RegisterValidation("decimal_gt0", PositiveDecimal)
	_ = validate.RegisterValidation("decimal_gte0", NonNegativeDecimal)
	return validate
}

// NotBlank rejects strings that are empty after trimming whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// PositiveDecimal requires a decimal.Decimal greater than zero.
func PositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

// NonNegativeDecimal requires a decimal.Decimal of zero or more.
func NonNegativeDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
