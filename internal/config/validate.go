package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// validate returns the process-wide validator.
func validate() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// ValidateStruct checks v against its `validate` struct tags.
func ValidateStruct(v any) error {
	return validate().Struct(v)
}

// ValidateVar checks a single value against tag.
func ValidateVar(field any, tag string) error {
	return validate().Var(field, tag)
}
