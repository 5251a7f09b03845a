package core

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRecord runs the declarative field constraints of a record and
// reports violations as an ErrorValidation carrying the constraint message.
// Repositories call this before any write, mirroring a schema-enforcing
// document store.
func ValidateRecord(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewErrorValidation(err.Error())
	}

	messages := make([]string, 0, len(verrs))
	for _, v := range verrs {
		switch v.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", v.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s cannot be more than %s characters", v.Field(), v.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s cannot be less than %s", v.Field(), v.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("%s cannot be more than %s", v.Field(), v.Param()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", v.Field()))
		case "url":
			messages = append(messages, fmt.Sprintf("%s must be a valid URL", v.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed constraint %s", v.Field(), v.Tag()))
		}
	}

	return NewErrorValidation("Validation failed: " + strings.Join(messages, ", "))
}
