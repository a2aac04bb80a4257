// Package views implements the interactive storefront UI as bubbletea
// models, one per page, composed under a root App model that owns
// navigation, the session guard, and the toast overlay.
package views

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/guard"
	"github.com/commercehq/shopctl/internal/log"
	"github.com/commercehq/shopctl/internal/notify"
	"github.com/commercehq/shopctl/internal/session"
)

// Deps bundles the shared services every view needs
type Deps struct {
	Session *session.Manager
	Client  *api.Client
	Cache   *cache.Store
	Notify  *notify.Center
	Logger  *log.Logger
}

// view is the contract a page model fulfils inside the App
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View() string
}

// inputCapturer is implemented by views that own a focused text input,
// which suppresses the App's single-letter navigation keys.
type inputCapturer interface {
	capturingInput() bool
}

// Messages shared between the App and its page views
type (
	// navigateMsg switches the App to a new route
	navigateMsg struct{ route string }

	// sessionResolvedMsg fires once Bootstrap has settled the session
	sessionResolvedMsg struct{}

	// loggedInMsg fires after a successful login or signup
	loggedInMsg struct{}

	// loggedOutMsg fires after the user logs out
	loggedOutMsg struct{}

	// toastTickMsg drives re-renders while notifications are on screen
	toastTickMsg struct{}
)

// navigate returns a command that switches to the given route
func navigate(route string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

const toastTickInterval = 250 * time.Millisecond

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// App is the root model: it resolves the session, gates routes through
// the guard, swaps page views on navigation, and overlays notifications.
type App struct {
	deps   *Deps
	styles Styles

	route   string
	current view

	// pending holds a route requested while the session was still
	// loading; it is replayed once the session resolves.
	pending string

	// loginFrom is the route an unauthenticated user attempted, so a
	// successful login can return there.
	loginFrom string

	history []string

	width    int
	height   int
	quitting bool
}

// NewApp creates the root model starting at the dashboard
func NewApp(deps *Deps) *App {
	return &App{
		deps:   deps,
		styles: DefaultStyles(),
		route:  RouteHome,
	}
}

// Init bootstraps the session and opens the initial route
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.bootstrapCmd(), navigate(RouteHome))
}

func (a *App) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Session.Bootstrap(context.Background()); err != nil {
			a.deps.Logger.WithError(err).Warn("session bootstrap failed")
		}
		return sessionResolvedMsg{}
	}
}

// Update handles messages and updates the application state
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case navigateMsg:
		return a, a.open(msg.route)

	case sessionResolvedMsg:
		// Replay the route that was waiting on the session, or
		// re-check the current one now that the guard can decide.
		target := a.route
		if a.pending != "" {
			target = a.pending
			a.pending = ""
		}
		return a, a.open(target)

	case loggedInMsg:
		target := RouteHome
		if a.loginFrom != "" {
			target = a.loginFrom
			a.loginFrom = ""
		}
		return a, tea.Batch(a.open(target), toastTick())

	case loggedOutMsg:
		a.deps.Cache.Clear()
		a.history = nil
		return a, tea.Batch(a.open(RouteLogin), toastTick())

	case toastTickMsg:
		if len(a.deps.Notify.Active()) > 0 {
			return a, toastTick()
		}
		return a, nil
	}

	return a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	if c, ok := a.current.(inputCapturer); ok && c.capturingInput() {
		return a.forward(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit
	case "esc":
		return a, a.back()
	case "H":
		return a, navigate(RouteHome)
	case "P":
		return a, navigate(RouteProducts)
	case "C":
		return a, navigate(RouteCart)
	case "O":
		return a, navigate(RouteOrders)
	case "U":
		return a, navigate(RouteUsers)
	case "L":
		if a.deps.Session.CurrentUser() != nil {
			return a, a.logoutCmd()
		}
		return a, navigate(RouteLogin)
	}

	return a.forward(msg)
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		a.deps.Session.Logout()
		a.deps.Notify.Push("Logged out", "", notify.SeverityDefault)
		return loggedOutMsg{}
	}
}

// open gates the route through the guard and mounts its view
func (a *App) open(route string) tea.Cmd {
	snap := a.deps.Session.Snapshot()

	if !IsPublicRoute(route) {
		state, redirect := guard.Check(snap, route)
		switch state {
		case guard.StateLoading:
			a.pending = route
			a.route = route
			a.current = nil
			return nil
		case guard.StateUnauthenticated:
			a.loginFrom = redirect.From
			route = redirect.To
		}
	}

	if a.route != route && a.route != "" && a.current != nil {
		a.history = append(a.history, a.route)
	}
	a.route = route
	a.current = a.mount(route)
	if a.current == nil {
		return nil
	}
	return a.current.Init()
}

// back pops the navigation history
func (a *App) back() tea.Cmd {
	if len(a.history) == 0 {
		return nil
	}
	route := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.route = route
	a.current = a.mount(route)
	if a.current == nil {
		return nil
	}
	return a.current.Init()
}

// mount builds the page view for a route
func (a *App) mount(route string) view {
	switch route {
	case RouteHome:
		return newDashboardView(a.deps, a.styles)
	case RouteLogin:
		return newLoginView(a.deps, a.styles)
	case RouteSignup:
		return newSignupView(a.deps, a.styles)
	case RouteProducts:
		return newProductsView(a.deps, a.styles)
	case RouteProductNew:
		return newProductFormView(a.deps, a.styles, nil)
	case RouteCart:
		return newCartView(a.deps, a.styles)
	case RouteOrders:
		return newOrdersView(a.deps, a.styles)
	case RouteUsers:
		return newUsersView(a.deps, a.styles)
	}
	if id, edit, ok := productRouteID(route); ok {
		if edit {
			return newProductEditLoader(a.deps, a.styles, id)
		}
		return newProductView(a.deps, a.styles, id)
	}
	if id, ok := orderRouteID(route); ok {
		return newOrderView(a.deps, a.styles, id)
	}
	return newDashboardView(a.deps, a.styles)
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.current == nil {
		return a, nil
	}
	next, cmd := a.current.Update(msg)
	a.current = next
	return a, cmd
}

// View renders the header, the current page, and the toast overlay
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if a.current == nil {
		b.WriteString(a.styles.Muted.Render("Loading session..."))
	} else {
		b.WriteString(a.current.View())
	}

	if overlay := a.renderToasts(); overlay != "" {
		b.WriteString("\n")
		b.WriteString(overlay)
	}

	return b.String()
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render("shopctl")
	who := "not logged in"
	if u := a.deps.Session.CurrentUser(); u != nil {
		who = u.Email
		if u.IsAdmin() {
			who += " (admin)"
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", a.styles.Muted.Render(who))
}

func (a *App) renderToasts() string {
	active := a.deps.Notify.Active()
	if len(active) == 0 {
		return ""
	}

	lines := make([]string, 0, len(active))
	for _, n := range active {
		style := a.styles.Toast
		switch n.Severity {
		case notify.SeveritySuccess:
			style = style.BorderForeground(lipgloss.Color("46"))
		case notify.SeverityError:
			style = style.BorderForeground(lipgloss.Color("196"))
		}
		text := n.Title
		if n.Description != "" {
			text += "\n" + a.styles.Muted.Render(n.Description)
		}
		lines = append(lines, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
