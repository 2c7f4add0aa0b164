package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"annia/internal/shared/errors"
)

// MsgInvalidRequest is returned for request bodies that fail to bind or
// validate.
const MsgInvalidRequest = "Solicitud inválida."

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s any) error {
	fieldErrors := fieldErrorsOf(validate.Struct(s))
	if len(fieldErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, getFieldErrorMessage(fe))
	}

	return errors.NewValidationError(MsgInvalidRequest, strings.Join(messages, "; "))
}

// InvalidFields returns the JSON names of the fields of s that fail their
// validate tags, in declaration order.
func InvalidFields(s any) []string {
	fieldErrors := fieldErrorsOf(validate.Struct(s))
	names := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		names = append(names, fe.Field())
	}
	return names
}

func fieldErrorsOf(err error) validator.ValidationErrors {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		return validationErrors
	}
	return nil
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
