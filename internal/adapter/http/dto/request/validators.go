package request

import (
	"grota_financiamento/pkg/calendar"
	"grota_financiamento/pkg/document"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the `cpf` and `yyyymmdd` tags to v.
// Empty values pass; combine with `required` where the field is mandatory.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("cpf", validateCPF); err != nil {
		return err
	}
	return v.RegisterValidation("yyyymmdd", validateDate)
}

func validateCPF(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return document.ValidCPF(s)
}

func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := calendar.ParseDate(s)
	return err == nil
}
