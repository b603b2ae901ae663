package validator

import (
	"log"
	"unicode"

	"github.com/go-playground/validator/v10"

	"learnhub_backend/internal/auth"
)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - это ошибка времени запуска
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'password': минимум 8 символов, хотя бы одна буква и одна цифра
	mustRegister("password", validatePassword)

	// 'role-name': имя известной системной роли
	mustRegister("role-name", validateRoleName)
}

func validatePassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	if len(value) < 8 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func validateRoleName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := auth.DefaultRoleLevels[value]
	return ok
}
