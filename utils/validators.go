package utils

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// InitValidator registers custom rules on both the standalone
// validator and gin's binding engine.
func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("timeofday", ValidateTimeOfDayRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeofday", ValidateTimeOfDayRule)
	}
}

func ValidateTimeOfDayRule(fl validator.FieldLevel) bool {
	return ValidateTimeOfDay(fl.Field().String())
}

// ValidateTimeOfDay accepts "HH:MM" wall-clock values, the format the
// workday cutoff is configured in.
func ValidateTimeOfDay(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
