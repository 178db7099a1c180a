package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Usa os nomes das tags json nas mensagens de erro
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// FieldViolation descreve uma regra de validação violada
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationDetails converte os erros do validator em detalhes para a resposta
func validationDetails(err error) []FieldViolation {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Message: err.Error()}}
	}

	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		violations = append(violations, FieldViolation{
			Field:   fieldErr.Namespace(),
			Message: formatViolation(fieldErr),
		})
	}
	return violations
}

func formatViolation(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "min":
		return fmt.Sprintf("%s deve ter ao menos %s item(ns)", field, err.Param())
	default:
		return fmt.Sprintf("%s falhou na validação %s", field, err.Tag())
	}
}
