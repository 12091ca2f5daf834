package validator

import (
	"log"

	"portfolio_backend/internal/templates"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-template-id': id шаблона из каталога
	mustRegister("is-template-id", validateTemplateID)

	// 'is-filter-type': тип фильтра списка портфолио
	mustRegister("is-filter-type", validateFilterType)
}

func validateTemplateID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // для пустых значений есть 'required'
	}
	_, ok := templates.Lookup(value)
	return ok
}

func validateFilterType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "all", "skills", "role":
		return true
	}
	return false
}
