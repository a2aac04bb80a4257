package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// dashboardView is the landing page after login
type dashboardView struct {
	deps   *Deps
	styles Styles
}

func newDashboardView(deps *Deps, styles Styles) *dashboardView {
	return &dashboardView{deps: deps, styles: styles}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(tea.Msg) (view, tea.Cmd) { return v, nil }

func (v *dashboardView) View() string {
	var b strings.Builder

	user := v.deps.Session.CurrentUser()
	if user != nil {
		b.WriteString(v.styles.Title.Render("Welcome, " + user.Name))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(user.Email))
		b.WriteString("\n\n")
	} else {
		b.WriteString(v.styles.Title.Render("Welcome"))
		b.WriteString("\n")
	}

	rows := [][2]string{
		{"P", "browse products"},
		{"C", "view cart"},
		{"O", "view orders"},
	}
	if user.IsAdmin() {
		rows = append(rows, [2]string{"U", "manage users"})
	}
	rows = append(rows, [2]string{"L", "log out"}, [2]string{"q", "quit"})

	for _, r := range rows {
		b.WriteString(v.styles.Key.Render(r[0]) + "  " + v.styles.KeyDesc.Render(r[1]))
		b.WriteString("\n")
	}

	return b.String()
}
