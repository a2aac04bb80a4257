package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/errors"
)

// signupResultMsg carries the outcome of an account creation attempt
type signupResultMsg struct{ err error }

// signupView is the account creation form. A successful signup logs
// the new user straight in.
type signupView struct {
	deps   *Deps
	styles Styles

	inputs     []textinput.Model
	focus      int
	submitting bool
	err        error
}

func newSignupView(deps *Deps, styles Styles) *signupView {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	return &signupView{
		deps:   deps,
		styles: styles,
		inputs: []textinput.Model{name, email, password},
	}
}

func (v *signupView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *signupView) capturingInput() bool { return true }

func (v *signupView) Update(msg tea.Msg) (view, tea.Cmd) {
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
		case "ctrl+l":
			return v, navigate(RouteLogin)
		}

	case signupResultMsg:
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

func (v *signupView) cycleFocus(backwards bool) {
	v.inputs[v.focus].Blur()
	if backwards {
		v.focus = (v.focus + len(v.inputs) - 1) % len(v.inputs)
	} else {
		v.focus = (v.focus + 1) % len(v.inputs)
	}
	v.inputs[v.focus].Focus()
}

func (v *signupView) submit() tea.Cmd {
	name := strings.TrimSpace(v.inputs[0].Value())
	email := strings.TrimSpace(v.inputs[1].Value())
	password := v.inputs[2].Value()
	if name == "" || email == "" || password == "" {
		v.err = errors.New(errors.ErrCodeValidateRequired, "name, email and password are required")
		return nil
	}

	v.submitting = true
	v.err = nil
	deps := v.deps
	return func() tea.Msg {
		err := deps.Session.Signup(context.Background(), email, password, name)
		if err != nil {
			deps.Notify.Error("Signup failed", errors.MessageOf(err))
			return signupResultMsg{err: err}
		}
		deps.Notify.Success("Account created", email)
		return signupResultMsg{}
	}
}

func (v *signupView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Sign up"))
	b.WriteString("\n")

	labels := []string{"Name     ", "Email    ", "Password "}
	for i, in := range v.inputs {
		b.WriteString(v.styles.Label.Render(labels[i]) + in.View())
		b.WriteString("\n")
	}

	if v.submitting {
		b.WriteString(v.styles.Muted.Render("Creating account..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("enter submit  tab next field  ctrl+l log in  ctrl+c quit"))
	return b.String()
}
