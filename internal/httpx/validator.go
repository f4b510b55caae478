package httpx

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports violations under the field's json name so messages
// match the wire DTO.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the struct's validation tags and returns one message
// per violation, in field declaration order. A nil result means the value
// is valid.
func ValidateStruct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var messages []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fieldName := fieldErr.Field()

		var message string
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s must not be empty", fieldName)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldName)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fieldName, fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldName, fieldErr.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fieldName)
		}
		messages = append(messages, message)
	}
	return messages
}
