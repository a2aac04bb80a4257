package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/errors"
)

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct{ err error }

// loginView is the email/password sign-in form
type loginView struct {
	deps   *Deps
	styles Styles

	inputs     []textinput.Model
	focus      int
	submitting bool
	err        error
}

func newLoginView(deps *Deps, styles Styles) *loginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	return &loginView{
		deps:   deps,
		styles: styles,
		inputs: []textinput.Model{email, password},
	}
}

func (v *loginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) capturingInput() bool { return true }

func (v *loginView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
			return v, nil
		case "enter":
			if v.focus < len(v.inputs)-1 {
				v.cycleFocus(false)
				return v, nil
			}
			return v, v.submit()
		case "ctrl+s":
			return v, navigate(RouteSignup)
		}

	case loginResultMsg:
		v.submitting = false
		if msg.err != nil {
			v.err = msg.err
			return v, toastTick()
		}
		return v, func() tea.Msg { return loggedInMsg{} }
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *loginView) cycleFocus(backwards bool) {
	v.inputs[v.focus].Blur()
	if backwards {
		v.focus = (v.focus + len(v.inputs) - 1) % len(v.inputs)
	} else {
		v.focus = (v.focus + 1) % len(v.inputs)
	}
	v.inputs[v.focus].Focus()
}

func (v *loginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.inputs[0].Value())
	password := v.inputs[1].Value()
	if email == "" || password == "" {
		v.err = errors.New(errors.ErrCodeValidateRequired, "email and password are required")
		return nil
	}

	v.submitting = true
	v.err = nil
	deps := v.deps
	return func() tea.Msg {
		err := deps.Session.Login(context.Background(), email, password)
		if err != nil {
			deps.Notify.Error("Login failed", errors.MessageOf(err))
			return loginResultMsg{err: err}
		}
		deps.Notify.Success("Welcome back", email)
		return loginResultMsg{}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Log in"))
	b.WriteString("\n")

	b.WriteString(v.styles.Label.Render("Email    ") + v.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Password ") + v.inputs[1].View())
	b.WriteString("\n")

	if v.submitting {
		b.WriteString(v.styles.Muted.Render("Signing in..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("enter submit  tab next field  ctrl+s sign up  ctrl+c quit"))
	return b.String()
}
