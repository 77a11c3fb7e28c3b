package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("senha", "min=6") // password minimum length
		v.RegisterAlias("codigo", "len=6,numeric")
		v.RegisterAlias("nonzero", "required")
	}
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the envelope's error field.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "json inválido"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "payload inválido"}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonzero":
		return "é obrigatório"
	case "email":
		return "deve ser um e-mail válido"
	case "url":
		return "deve ser uma URL válida"
	case "min", "senha":
		return "é muito curto"
	case "max":
		return "é muito longo"
	case "len", "codigo":
		return "tem tamanho inválido"
	case "numeric":
		return "deve ser numérico"
	case "gt", "gte":
		return "deve ser maior"
	case "oneof":
		return "tem um valor não permitido"
	default:
		return "é inválido"
	}
}
