package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sodam-app/sodam/internal/constants"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance returns the shared validator with the sodam-specific tags registered.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			return IsTimeOfDay(fl.Field().String())
		})
		_ = validate.RegisterValidation("font", func(fl validator.FieldLevel) bool {
			return slices.Contains(constants.Fonts, fl.Field().String())
		})
	})
	return validate
}

// Struct validates v against its `validate` tags and returns a readable error.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// Var validates a single value against a tag expression.
func Var(field any, tag string) error {
	return instance().Var(field, tag)
}

// TimeOfDay validates an HH:MM reminder time.
func TimeOfDay(value string) error {
	if !IsTimeOfDay(value) {
		return fmt.Errorf("invalid time format: %q (expected HH:MM)", value)
	}
	return nil
}

// FontName validates a font selection against the known fonts.
func FontName(value string) error {
	if err := Var(value, "required,font"); err != nil {
		return fmt.Errorf("unknown font %q (available: %s)", value, strings.Join(constants.Fonts, ", "))
	}
	return nil
}

// IsTimeOfDay reports whether value parses as HH:MM.
func IsTimeOfDay(value string) bool {
	if len(value) != len(constants.TimeFormat) {
		return false
	}
	_, err := time.Parse(constants.TimeFormat, value)
	return err == nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", fe.Field())
	case "timeofday":
		return fmt.Sprintf("%s must be a time in HH:MM format", fe.Field())
	case "font":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(constants.Fonts, ", "))
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), comparison(fe.Tag()), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "at least"
	default:
		return "at least"
	}
}
