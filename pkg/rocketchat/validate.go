package rocketchat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Validate checks v against its validate tags. A failed required_without
// rule becomes a MissingParameterError naming the wire fields of the
// alternatives.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validating %T: %w", v, err)
	}

	structType := reflect.TypeOf(v)
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == "required_without" {
			return &MissingParameterError{
				Alternatives: []string{
					wireName(structType, fieldErr.StructField()),
					wireName(structType, fieldErr.Param()),
				},
			}
		}
	}

	first := validationErrs[0]

	return fmt.Errorf("invalid %s: failed %q rule: %w", first.Namespace(), first.Tag(), err)
}

// wireName returns the mapstructure name of a struct field, or the field
// name when untagged.
func wireName(structType reflect.Type, field string) string {
	structField, ok := structType.FieldByName(field)
	if !ok {
		return field
	}

	name, _, _ := strings.Cut(structField.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return field
	}

	return name
}
