// Package validation wraps go-playground/validator with the wishlist specific rules.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HexTag validates #RGB and #RRGGBB colors.
const HexTag = "hexrgb"

type (
	// ErrorResponse represents a validation error response.
	ErrorResponse struct {
		Error       bool        `json:"error"`
		FailedField string      `json:"failedField"`
		Tag         string      `json:"tag"`
		Value       interface{} `json:"value"`
	}

	// XValidator validates request structs.
	XValidator struct{}
)

var (
	hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	validate   = newValidate()
)

func newValidate() *validator.Validate {
	v := validator.New()

	// RegisterValidation only fails on empty tags or a nil func.
	_ = v.RegisterValidation(HexTag, func(fl validator.FieldLevel) bool { //nolint:errcheck // static tag
		return hexPattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v XValidator) Validate(data interface{}) []ErrorResponse {
	var validationErrors []ErrorResponse

	errs := validate.Struct(data)
	if errs != nil {
		verrs, ok := errs.(validator.ValidationErrors) //nolint:errorlint // validator returns the concrete type
		if !ok {
			return []ErrorResponse{{Error: true, Tag: "invalid", Value: errs.Error()}}
		}

		for _, err := range verrs {
			validationErrors = append(validationErrors, ErrorResponse{
				Error:       true,
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}

// Hex returns s trimmed when it is a #RGB or #RRGGBB color, else "".
func Hex(s string) string {
	s = strings.TrimSpace(s)
	if validate.Var(s, HexTag) != nil {
		return ""
	}

	return s
}

// HTTPURL returns s trimmed when it is an absolute http(s) URL, else "".
func HTTPURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || validate.Var(s, "http_url") != nil {
		return ""
	}

	return s
}
