package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/qreserve/qreserve/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	configureValidator(validate)
}

// RegisterGinValidators installs the same tag name function and custom
// validations on gin's binding validator so ShouldBindJSON and ValidateStruct
// report identical messages.
func RegisterGinValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configureValidator(v)
	}
}

func configureValidator(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects strings made only of whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

// RegisterEnumValidation adds a tag accepting only string values for which
// valid returns true, on both the package validator and gin's.
func RegisterEnumValidation(tag string, valid func(string) bool) {
	fn := func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		// empty values are left to required/omitempty
		if field.String() == "" {
			return true
		}
		return valid(field.String())
	}
	_ = validate.RegisterValidation(tag, fn)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation(tag, fn)
	}
	enumTags[tag] = struct{}{}
}

var enumTags = map[string]struct{}{}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	return TranslateBindingError(validate.Struct(s))
}

// TranslateBindingError turns validator and JSON decoding failures into a
// validation AppError. Other errors pass through unchanged.
func TranslateBindingError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
	}

	if errors.IsAppError(err) {
		return err
	}

	return errors.NewValidationError("Invalid request body", err.Error())
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		if _, ok := enumTags[fe.Tag()]; ok {
			return fmt.Sprintf("%s has an unsupported value %q", field, fe.Value())
		}
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
