package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brickapp/brickapp-api/internal/domain"
)

var loginRe = regexp.MustCompile(`^[a-zA-Z0-9_.]{4,30}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginRe.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate aplica las etiquetas `validate` de la estructura.
// Devuelve domain.ErrInvalidInput con el primer campo inválido.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := verrs[0]
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, mensaje(fe))
}

func mensaje(fe validator.FieldError) string {
	campo := fe.Namespace()
	if i := strings.Index(campo, "."); i >= 0 {
		campo = campo[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", campo)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s", campo, fe.Param())
	case "max":
		return fmt.Sprintf("%s admite como máximo %s", campo, fe.Param())
	case "email":
		return fmt.Sprintf("%s no es un email válido", campo)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", campo, fe.Param())
	case "login":
		return fmt.Sprintf("%s debe tener de 4 a 30 caracteres (letras, números, _ o .)", campo)
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID", campo)
	case "gte", "gt":
		return fmt.Sprintf("%s debe ser %s %s", campo, map[string]string{"gte": ">=", "gt": ">"}[fe.Tag()], fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", campo, fe.Tag())
	}
}
