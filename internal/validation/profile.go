// Package validation holds the declarative schema for the profile edit
// form. Field rules run in tag order and report the first failure only;
// the old/new password pairing is a cross-field rule attached to the
// newPassword slot.
package validation

import (
	"reflect"
	"strings"

	"perfil/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("upperchar", hasUppercase)
	_ = v.RegisterValidation("digitchar", hasDigit)

	return v
}

func hasUppercase(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func hasDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// Profile validates one edit session's values. It returns nil when the
// input is valid, otherwise a map with at most one message per field.
func Profile(input domain.ProfileFormInput) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			name := fieldError.Field()
			if _, taken := fields[name]; taken {
				continue
			}
			fields[name] = message(name, fieldError.Tag())
		}
	}

	return fields
}

func message(field, tag string) string {
	if field == "name" {
		return "Digite o nome completo."
	}

	switch tag {
	case "required_with":
		return "Nova senha é obrigatória se a senha antiga for fornecida"
	case "min":
		return "A senha deve ter no mínimo 6 caracteres."
	case "upperchar":
		return "A senha deve conter pelo menos uma letra maiúscula."
	case "digitchar":
		return "A senha deve conter pelo menos um número."
	default:
		return "O campo " + field + " é inválido."
	}
}
