package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAPITransport, "test error message")

	if err.Code != ErrCodeAPITransport {
		t.Errorf("expected code %s, got %s", ErrCodeAPITransport, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read token file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *ShopError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeAPIStatus, "server rejected request"),
			wantCode: "API-002",
			wantMsg:  "server rejected request",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "read failed",
		},
		{
			name:     "error with suggestions",
			err:      New(ErrCodeAuthNotLoggedIn, "not logged in").WithSuggestion("Run 'shopctl auth login'"),
			wantCode: "AUTH-003",
			wantMsg:  "not logged in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()

			if !strings.Contains(got, tt.wantCode) {
				t.Errorf("expected error string to contain code %s, got: %s", tt.wantCode, got)
			}
			if !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected error string to contain message %q, got: %s", tt.wantMsg, got)
			}
		})
	}
}

func TestErrorSuggestionsRendered(t *testing.T) {
	err := New(ErrCodeAuthzAdminOnly, "admin role required").
		WithSuggestions("Ask an administrator", "Use a different account")

	got := err.Error()
	if !strings.Contains(got, "Suggestions:") {
		t.Errorf("expected suggestions header in: %s", got)
	}
	if !strings.Contains(got, "Ask an administrator") {
		t.Errorf("expected first suggestion in: %s", got)
	}
	if !strings.Contains(got, "Use a different account") {
		t.Errorf("expected second suggestion in: %s", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "shop error",
			err:  New(ErrCodeAPINotFound, "product 42 not found"),
			want: ErrCodeAPINotFound,
		},
		{
			name: "wrapped shop error",
			err:  fmt.Errorf("list products: %w", New(ErrCodeAPITransport, "request failed")),
			want: ErrCodeAPITransport,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := NewNotFoundError("order", "7")

	if !HasCode(err, ErrCodeAPINotFound) {
		t.Error("expected HasCode to match ErrCodeAPINotFound")
	}
	if HasCode(err, ErrCodeAPITransport) {
		t.Error("expected HasCode to reject unrelated code")
	}
}

func TestMessageOf(t *testing.T) {
	shopErr := New(ErrCodeAuthInvalidCredentials, "invalid email or password").
		WithSuggestion("Check your credentials")

	if got := MessageOf(shopErr); got != "invalid email or password" {
		t.Errorf("MessageOf() = %q, want the bare message", got)
	}

	wrapped := fmt.Errorf("outer: %w", shopErr)
	if got := MessageOf(wrapped); got != "invalid email or password" {
		t.Errorf("MessageOf(wrapped) = %q, want the bare message", got)
	}

	if got := MessageOf(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("MessageOf(plain) = %q, want %q", got, "plain")
	}

	if got := MessageOf(nil); got != "" {
		t.Errorf("MessageOf(nil) = %q, want empty", got)
	}
}
