package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weatherview.app/pkg/validation"
)

// validateCity validates the city binding tag
func validateCity(fl validator.FieldLevel) bool {
	return validation.IsValidCityName(fl.Field().String())
}

// RegisterValidators registers the custom binding validators on gin's engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("city", validateCity)
}
