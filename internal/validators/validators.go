// SPDX-License-Identifier: Apache-2.0

// Package validators wraps go-playground/validator v10 behind a thread-safe
// singleton with the custom rules the catalog needs: ISBN-13 digit strings,
// dates that may not lie in the future, the closed genre set, username
// characters and http(s) website addresses.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/avdeenko/bookclub/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	isbnRe     = regexp.MustCompile(`^[0-9]{13}$`)
)

// GetValidator returns the singleton validator instance with all custom
// rules registered. Thread-safe; the instance caches struct metadata.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// registration only fails for empty tags or nil funcs
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("isbn13digits", func(fl validator.FieldLevel) bool {
			return isbnRe.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("bookgenre", func(fl validator.FieldLevel) bool {
			return models.IsValidGenre(fl.Field().String())
		})
		_ = validate.RegisterValidation("webaddress", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
		})
		_ = validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
			date, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return false
			}
			return !date.After(time.Now())
		})
		_ = validate.RegisterValidation("notfutureyear", func(fl validator.FieldLevel) bool {
			return fl.Field().Int() <= int64(time.Now().Year())
		})
	})

	return validate
}

// FieldErrors holds per-field validation failures keyed by the JSON-ish
// lowercase field name.
type FieldErrors struct {
	Fields map[string]string
}

// Error implements the error interface with a combined message.
func (fe *FieldErrors) Error() string {
	if len(fe.Fields) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(fe.Fields))
	for field, message := range fe.Fields {
		messages = append(messages, field+": "+message)
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates s against its validate tags. Returns nil on
// success, *FieldErrors describing every failing field otherwise.
func ValidateStruct(s any) *FieldErrors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &FieldErrors{Fields: map[string]string{"request": err.Error()}}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[strings.ToLower(fieldErr.Field())] = translateError(fieldErr)
	}

	return &FieldErrors{Fields: fields}
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits, '_', '.' and '-'", field)
	case "isbn13digits":
		return fmt.Sprintf("%s must be exactly 13 digits", field)
	case "bookgenre":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.Genres, ", "))
	case "webaddress":
		return fmt.Sprintf("%s must start with http:// or https://", field)
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future", field)
	case "notfutureyear":
		return fmt.Sprintf("%s cannot be in the future", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "min", "max":
		return translateMinMax(fe, field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func translateMinMax(fe validator.FieldError, field, param string) string {
	isString := fe.Kind().String() == "string"

	if fe.Tag() == "min" {
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	}
	if isString {
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	}
	return fmt.Sprintf("%s must be at most %s", field, param)
}
