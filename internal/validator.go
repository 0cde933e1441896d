package internal

import (
	"github.com/go-playground/validator/v10"
)

// Validator validates loaded configurations. Besides the built-in tags it knows
// "limit": an integer that is either positive or -1 for unlimited.
var Validator = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("limit", validateLimit); err != nil {
		panic(err)
	}
	return validate
}

func validateLimit(field validator.FieldLevel) bool {
	value := field.Field().Int()
	return value == -1 || value > 0
}
