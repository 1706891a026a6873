// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterCustomValidations регистрирует наши правила в переданном валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("email_shape", isEmailShape); err != nil {
		return err
	}
	return nil
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// isEmailShape - грубая проверка вида local@domain.tld, без RFC-разбора.
func isEmailShape(fl validator.FieldLevel) bool {
	return emailShape.MatchString(fl.Field().String())
}
