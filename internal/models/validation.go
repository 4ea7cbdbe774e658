package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidationErrors maps a JSON field name to its human-readable problems.
//
// Nested video fields are keyed as "videos.<field>".
type ValidationErrors map[string][]string

// Add records msg against field.
func (v ValidationErrors) Add(field, msg string) {
	for _, existing := range v[field] {
		if existing == msg {
			return
		}
	}
	v[field] = append(v[field], msg)
}

// Merge copies other's messages into v, prefixing each field with prefix.
func (v ValidationErrors) Merge(prefix string, other ValidationErrors) {
	for field, msgs := range other {
		for _, msg := range msgs {
			v.Add(prefix+field, msg)
		}
	}
}

// Err returns v as an error, or nil when there are no problems.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(v[field], ", ")))
	}
	return fmt.Sprintf("%v: %s", shared.ErrInvalidInput, strings.Join(parts, "; "))
}

// Is reports validation failures as [shared.ErrInvalidInput].
func (v ValidationErrors) Is(target error) bool {
	return target == shared.ErrInvalidInput
}

// validateStruct runs struct tag validation and translates failures into [ValidationErrors].
func validateStruct(s any) ValidationErrors {
	problems := ValidationErrors{}

	err := validate.Struct(s)
	if err == nil {
		return problems
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		problems.Add("base", err.Error())
		return problems
	}

	for _, fe := range fieldErrs {
		problems.Add(fe.Field(), message(fe))
	}
	return problems
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "can't be blank"
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
	default:
		return "is invalid"
	}
}
