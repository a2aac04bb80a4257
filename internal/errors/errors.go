package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthTokenRejected      ErrorCode = "AUTH-002"
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-003"

	// Authorization errors (AUTHZ-001 to AUTHZ-099)
	ErrCodeAuthzForbidden ErrorCode = "AUTHZ-001"
	ErrCodeAuthzAdminOnly ErrorCode = "AUTHZ-002"

	// API errors (API-001 to API-099)
	ErrCodeAPITransport   ErrorCode = "API-001"
	ErrCodeAPIStatus      ErrorCode = "API-002"
	ErrCodeAPINotFound    ErrorCode = "API-003"
	ErrCodeAPIDecode      ErrorCode = "API-004"
	ErrCodeAPIEncode      ErrorCode = "API-005"

	// Validation errors (VALIDATE-001 to VALIDATE-099)
	ErrCodeValidateNumber   ErrorCode = "VALIDATE-001"
	ErrCodeValidateQuantity ErrorCode = "VALIDATE-002"
	ErrCodeValidateRequired ErrorCode = "VALIDATE-003"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionStoreFailed ErrorCode = "SESSION-001"
	ErrCodeSessionInvalid     ErrorCode = "SESSION-002"

	// Cache errors (CACHE-001 to CACHE-099)
	ErrCodeCacheFetchFailed ErrorCode = "CACHE-001"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// ShopError represents an enhanced error with code, suggestions, and documentation
type ShopError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ShopError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ShopError) Unwrap() error {
	return e.Cause
}

// New creates a new ShopError
func New(code ErrorCode, message string) *ShopError {
	return &ShopError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ShopError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ShopError {
	return &ShopError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ShopError) WithSuggestion(suggestion string) *ShopError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ShopError) WithSuggestions(suggestions ...string) *ShopError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf returns the error code of err if it is a ShopError, or an empty code otherwise
func CodeOf(err error) ErrorCode {
	var shopErr *ShopError
	if stderrors.As(err, &shopErr) {
		return shopErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given error code
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// MessageOf returns the short message of a ShopError without its
// suggestions, or err.Error() for other errors. Suitable for
// single-line display.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var shopErr *ShopError
	if stderrors.As(err, &shopErr) {
		return shopErr.Message
	}
	return err.Error()
}

// Common error constructors for frequently used errors

// NewInvalidCredentialsError creates a bad email/password error
func NewInvalidCredentialsError(cause error) *ShopError {
	return Wrap(ErrCodeAuthInvalidCredentials, "invalid email or password", cause).
		WithSuggestion("Check the email address for typos").
		WithSuggestion("Run 'shopctl auth signup' if you do not have an account yet")
}

// NewNotLoggedInError creates an error for operations requiring a session
func NewNotLoggedInError() *ShopError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'shopctl auth login' to authenticate")
}

// NewAdminOnlyError creates a client-side role gate error
func NewAdminOnlyError(action string) *ShopError {
	return New(ErrCodeAuthzAdminOnly, fmt.Sprintf("admin role required to %s", action)).
		WithSuggestion("Ask an administrator to perform this action or to grant you the admin role")
}

// NewTransportError creates a network-level failure error
func NewTransportError(cause error) *ShopError {
	return Wrap(ErrCodeAPITransport, "request failed", cause).
		WithSuggestion("Check that the API server is reachable").
		WithSuggestion("Verify the server URL with 'shopctl config' or the --server flag")
}

// NewNotFoundError creates a missing-resource error
func NewNotFoundError(resource string, id string) *ShopError {
	return New(ErrCodeAPINotFound, fmt.Sprintf("%s %s not found", resource, id))
}

// NewQuantityError creates an invalid quantity validation error
func NewQuantityError(detail string) *ShopError {
	return New(ErrCodeValidateQuantity, fmt.Sprintf("invalid quantity: %s", detail)).
		WithSuggestion("Quantity must be a positive whole number no greater than the available stock")
}
