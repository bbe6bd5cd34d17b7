// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserSuspended      = "auth.user_suspended"
	KeyAuthAccessDenied       = "auth.access_denied"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Products
	KeyProductNotFound    = "product.not_found"
	KeyProductNotEligible = "product.not_eligible"
	KeyProductInvalidID   = "product.invalid_id"

	// Pages
	KeyPageNotFound = "page.not_found"

	// Links
	KeyLinkGenerated = "link.generated"
	KeyLinkEmpty     = "link.empty"
	KeyPageRequired  = "link.page_required"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"

	// Server
	KeyInternalError = "server.internal_error"
)
