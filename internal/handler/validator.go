package handler

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneRe accepts digits, +, -, spaces, and parentheses only.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s()]*$`)

// CustomValidator wraps validator so Echo can call c.Validate(req).
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the storefront's custom
// rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
