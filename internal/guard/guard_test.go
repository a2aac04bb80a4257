package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/session"
)

func TestResolve(t *testing.T) {
	user := &api.User{ID: 1, Email: "a@b.c", Role: "user"}

	tests := []struct {
		name string
		snap session.Snapshot
		want State
	}{
		{
			name: "loading without user",
			snap: session.Snapshot{Loading: true},
			want: StateLoading,
		},
		{
			name: "loading wins even with user set",
			snap: session.Snapshot{Loading: true, User: user},
			want: StateLoading,
		},
		{
			name: "resolved without user",
			snap: session.Snapshot{Loading: false},
			want: StateUnauthenticated,
		},
		{
			name: "resolved with user",
			snap: session.Snapshot{Loading: false, User: user},
			want: StateAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.snap))
		})
	}
}

func TestCheckRedirect(t *testing.T) {
	state, redirect := Check(session.Snapshot{}, "/orders/3")

	assert.Equal(t, StateUnauthenticated, state)
	require.NotNil(t, redirect)
	assert.Equal(t, LoginRoute, redirect.To)
	assert.Equal(t, "/orders/3", redirect.From)
}

func TestCheckNoRedirectWhileLoading(t *testing.T) {
	state, redirect := Check(session.Snapshot{Loading: true}, "/orders/3")

	assert.Equal(t, StateLoading, state)
	assert.Nil(t, redirect, "loading must render the placeholder, not redirect")
}

func TestCheckAuthenticated(t *testing.T) {
	snap := session.Snapshot{User: &api.User{ID: 1}}
	state, redirect := Check(snap, "/products")

	assert.Equal(t, StateAuthenticated, state)
	assert.Nil(t, redirect)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(&api.User{Role: "admin"}))

	err := RequireAdmin(&api.User{Role: "user"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAuthzAdminOnly))

	err = RequireAdmin(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAuthNotLoggedIn))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}
