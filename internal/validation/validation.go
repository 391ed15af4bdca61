// Package validation checks decoded request shapes against their struct tags
// and reports every violating field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Messager lets a shape supply human readable messages keyed by
// "<jsonField>.<tag>", e.g. "price.required".
type Messager interface {
	ValidationMessages() map[string]string
}

// Errors maps a JSON field name to the message of its first failing rule.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", notBlank)
		validate = v
	})
	return validate
}

// Struct validates s. It returns nil, an Errors value, or an error when s is
// not something the validator can inspect.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	var messages map[string]string
	if m, ok := s.(Messager); ok {
		messages = m.ValidationMessages()
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = defaultMessage(fe)
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("El campo %s es obligatorio", fe.Field())
	case "email":
		return "Formato de email inválido"
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual que %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", fe.Field())
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	default:
		return field.IsValid() && !field.IsZero()
	}
}
