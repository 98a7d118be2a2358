package document

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator проверяет поля документа до отправки на сервер
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает валидатор с правилом notblank и именами полей из json-тегов
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate возвращает ошибку ErrValidation со списком некорректных полей.
// Если enums непустые, статус и тип документа должны входить в списки.
func (v *Validator) Validate(op string, f Fields, enums Enums) error {
	var fields []string

	if err := v.validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return NewError(op, ErrValidation, err)
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}

	if len(enums.DocumentTypes) > 0 && strings.TrimSpace(f.DocumentType) != "" &&
		!slices.Contains(enums.DocumentTypes, f.DocumentType) {
		fields = append(fields, "document_type")
	}
	if len(enums.Statuses) > 0 && f.Status != "" && !slices.Contains(enums.Statuses, f.Status) {
		fields = append(fields, "status")
	}

	if len(fields) > 0 {
		return ValidationError(op, fields...)
	}
	return nil
}

// RequiredFilled сообщает, заполнены ли обязательные поля
func (v *Validator) RequiredFilled(f Fields) bool {
	return v.validate.Struct(f) == nil
}
