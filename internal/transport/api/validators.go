package api

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validatePhoneChars разрешает в телефоне только цифры, пробелы и символы + - ( ).
func validatePhoneChars(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '+', r == '-', r == '(', r == ')':
		default:
			return false
		}
	}
	return true
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("phone_chars", validatePhoneChars); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
