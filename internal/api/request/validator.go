package request

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
)

// Validator valida os payloads de entrada e devolve ValidationError.
type Validator struct {
	validate *validator.Validate
}

// NewValidator cria o validador usando os nomes JSON dos campos nas mensagens.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("objectid", validateObjectID)
	return &Validator{validate: v}
}

// Validate aplica as tags `validate` de i.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return apperror.NewValidationError(formatValidationError(err))
	}
	return nil
}

func validateObjectID(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return identifier.Valid(fl.Field().String())
}

func formatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, fe := range errs {
			field := fe.Field()
			if field == "" {
				field = fe.StructField()
			}
			parts = append(parts, field+" failed on "+fe.Tag())
		}
		return "Validation error: " + strings.Join(parts, "; ")
	}
	return "Validation error"
}
