package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation messages name fields by their json key, or form key for queries.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// FormatBindingError turns a gin binding failure into the message returned
// to the client.
func FormatBindingError(err error) string {
	if err == nil {
		return ""
	}

	var (
		dateErr   *DateParamError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		fieldErrs validator.ValidationErrors
	)
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required."
	case errors.As(err, &dateErr):
		return fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", dateErr.Value)
	case errors.As(err, &syntaxErr):
		return "Request body must be valid JSON."
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s must be a %s.", typeErr.Field, typeErr.Type.Kind())
	case errors.As(err, &fieldErrs):
		out := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, formatFieldError(fe))
		}
		return strings.Join(out, " ")
	}
	return "Invalid request."
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
