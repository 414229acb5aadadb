package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// "date" accepts YYYY-MM-DD or an empty string, which clears the date.
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(dateLayout, value)
		return err == nil
	})
	return v
}

// validateStruct runs the validate tags of input and converts failures into
// a ValidationError keyed by JSON field path, e.g. "emails.1".
func validateStruct(input any) *ValidationError {
	verr := &ValidationError{}

	err := validate.Struct(input)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("input", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return verr
}

// fieldPath turns "AcceptInput.emails[1]" into "emails.1".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("May not be longer than %s characters.", fe.Param())
		}
		return fmt.Sprintf("May not have more than %s items.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must have at least %s items.", fe.Param())
	case "eqfield":
		return "The confirmation does not match."
	case "date":
		return "Must be a date in the format YYYY-MM-DD."
	case "gt":
		return "Must be greater than zero."
	default:
		return fmt.Sprintf("Failed the %q rule.", fe.Tag())
	}
}
