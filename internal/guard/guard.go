// Package guard gates protected views on the session state.
//
// The guard never blocks: it maps the current session snapshot to one of
// three states and the caller renders accordingly. While the session is
// loading nothing is decided yet; an unauthenticated session redirects to
// login carrying the attempted route so login can return the user there.
package guard

import (
	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/session"
)

// State is the guard's decision for a protected view
type State int

const (
	// StateLoading means the session has not resolved yet; render a
	// placeholder, never a redirect.
	StateLoading State = iota

	// StateUnauthenticated means no user; redirect to login.
	StateUnauthenticated

	// StateAuthenticated means the view may render.
	StateAuthenticated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Redirect captures where an unauthenticated user was heading so login
// can send them back afterwards.
type Redirect struct {
	// To is the route to render instead (the login view)
	To string

	// From is the route the user attempted
	From string
}

// LoginRoute is where unauthenticated traffic is sent
const LoginRoute = "/login"

// Resolve maps a session snapshot to a guard state
func Resolve(snap session.Snapshot) State {
	if snap.Loading {
		return StateLoading
	}
	if snap.User == nil {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// Check resolves the guard state for an attempted route, returning a
// redirect when the route must not render.
func Check(snap session.Snapshot, attempted string) (State, *Redirect) {
	state := Resolve(snap)
	if state == StateUnauthenticated {
		return state, &Redirect{To: LoginRoute, From: attempted}
	}
	return state, nil
}

// RequireAdmin reports whether the user may see admin-only views.
// This is a client-side convenience; the API enforces authorization
// independently.
func RequireAdmin(user *api.User) error {
	if user == nil {
		return errors.NewNotLoggedInError()
	}
	if !user.IsAdmin() {
		return errors.NewAdminOnlyError("view this page")
	}
	return nil
}
