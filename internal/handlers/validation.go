package handlers

import (
	"sync"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("supported_currency", supportedCurrency)
		}
	})
}

// supportedCurrency accepts codes of SupportedCurrencies in any case.
func supportedCurrency(fl validator.FieldLevel) bool {
	return domain.ParseCurrency(fl.Field().String()).IsSupported()
}
