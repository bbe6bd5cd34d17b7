// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/javajoker/cartlink/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserSuspended      = errors.New("account is suspended")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyLink          = errors.New("no linkable products selected")
	ErrPageRequired       = errors.New("page redirect requires a page_id or page_url")
	ErrPageNotFound       = errors.New("redirect page not found")
)

// IneligibleError reports a selected product that cannot be put into a link.
type IneligibleError struct {
	ProductID uint
	Errors    []validation.Entry
}

func (e *IneligibleError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("product %d is not eligible for links", e.ProductID)
	}
	return fmt.Sprintf("product %d is not eligible for links: %s", e.ProductID, e.Errors[0].Message)
}

// Details returns the entries in a shape suitable for API error details.
func (e *IneligibleError) Details() map[string]interface{} {
	return map[string]interface{}{
		"product_id": e.ProductID,
		"errors":     e.Errors,
	}
}

func ineligible(productID uint, entries ...validation.Entry) *IneligibleError {
	return &IneligibleError{ProductID: productID, Errors: entries}
}
