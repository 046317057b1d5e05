package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire, not as Go fields.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError describes a single failed validation check on a request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Struct validates a request payload and returns one FieldError per failed
// check, or nil if the payload is valid.
func Struct(payload any) []FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	fieldErrs := []FieldError{}
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Error: "invalid payload"}}
	}
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Error: message(fe)})
	}
	return fieldErrs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	default:
		return "invalid value"
	}
}
