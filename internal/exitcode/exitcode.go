package exitcode

import (
	"os"

	"github.com/commercehq/shopctl/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (bad credentials, rejected token)
	AuthError = 3

	// ForbiddenError indicates an authorization failure (role mismatch)
	ForbiddenError = 4

	// NotFoundError indicates a missing resource on the server
	NotFoundError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// ValidationError indicates rejected user input (malformed numbers, bad quantity)
	ValidationError = 7

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeAuthInvalidCredentials,
		errors.ErrCodeAuthTokenRejected,
		errors.ErrCodeAuthNotLoggedIn:
		return AuthError
	case errors.ErrCodeAuthzForbidden,
		errors.ErrCodeAuthzAdminOnly:
		return ForbiddenError
	case errors.ErrCodeAPINotFound:
		return NotFoundError
	case errors.ErrCodeAPITransport:
		return NetworkError
	case errors.ErrCodeValidateNumber,
		errors.ErrCodeValidateQuantity,
		errors.ErrCodeValidateRequired:
		return ValidationError
	case errors.ErrCodeConfigNotFound,
		errors.ErrCodeConfigInvalid,
		errors.ErrCodeConfigUnmarshal:
		return UsageError
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or configuration)"
	case AuthError:
		return "Authentication error"
	case ForbiddenError:
		return "Authorization error (admin role required)"
	case NotFoundError:
		return "Resource not found"
	case NetworkError:
		return "Network error"
	case ValidationError:
		return "Invalid input"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
