// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("link_type", oneOf("add-to-cart", "checkout"))
	validate.RegisterValidation("redirect_type", oneOf("none", "cart", "checkout", "product", "page"))
	validate.RegisterValidation("link_encoding", oneOf("decoded", "encoded"))
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	// Usernames may be emails, 3-100 characters
	if len(username) < 3 || len(username) > 100 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// oneOf accepts the empty string or any of values, case-insensitively.
func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		if v == "" {
			return true
		}
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "username":
		return "Username must be 3-100 characters of letters, numbers, and . _ @ -"
	case "link_type":
		return "Link type must be add-to-cart or checkout"
	case "redirect_type":
		return "Redirect must be one of none, cart, checkout, product, page"
	case "link_encoding":
		return "Encoding must be decoded or encoded"
	default:
		return e.Field() + " is invalid"
	}
}
