package exitcode

import (
	"fmt"
	"testing"

	"github.com/commercehq/shopctl/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("something broke"),
			want: GeneralError,
		},
		{
			name: "invalid credentials",
			err:  errors.NewInvalidCredentialsError(nil),
			want: AuthError,
		},
		{
			name: "rejected token",
			err:  errors.New(errors.ErrCodeAuthTokenRejected, "token rejected"),
			want: AuthError,
		},
		{
			name: "admin gate",
			err:  errors.NewAdminOnlyError("manage users"),
			want: ForbiddenError,
		},
		{
			name: "not found",
			err:  errors.NewNotFoundError("product", "12"),
			want: NotFoundError,
		},
		{
			name: "transport failure",
			err:  errors.NewTransportError(fmt.Errorf("connection refused")),
			want: NetworkError,
		},
		{
			name: "wrapped transport failure",
			err:  fmt.Errorf("list products: %w", errors.NewTransportError(nil)),
			want: NetworkError,
		},
		{
			name: "bad quantity",
			err:  errors.NewQuantityError("must be positive"),
			want: ValidationError,
		},
		{
			name: "config unmarshal",
			err:  errors.New(errors.ErrCodeConfigUnmarshal, "bad yaml"),
			want: UsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	for code := Success; code <= ValidationError; code++ {
		if Description(code) == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if Description(99) != "Unknown error" {
		t.Error("unknown code should report 'Unknown error'")
	}
}
