package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/guard"
)

const usersPageLimit = 20

// usersLoadedMsg delivers a user listing page
type usersLoadedMsg struct {
	page *api.UserPage
	err  error
}

// userMutatedMsg reports a create, update or delete result
type userMutatedMsg struct {
	action string
	err    error
}

// usersView is the admin user management page: a searchable list with
// an inline create/edit form.
type usersView struct {
	deps   *Deps
	styles Styles

	denied error

	search  textinput.Model
	params  api.ListParams
	page    *api.UserPage
	cursor  int
	loading bool
	err     error

	// form state; editing is nil for create
	formOpen bool
	editing  *api.User
	inputs   []textinput.Model
	focus    int
	fieldErr string
}

const (
	userFieldName = iota
	userFieldEmail
	userFieldRole
	userFieldPassword
	userFieldCount
)

func newUsersView(deps *Deps, styles Styles) *usersView {
	search := textinput.New()
	search.Placeholder = "search users"
	search.CharLimit = 80

	return &usersView{
		deps:   deps,
		styles: styles,
		denied: guard.RequireAdmin(deps.Session.CurrentUser()),
		search: search,
		params: api.ListParams{Page: 1, Limit: usersPageLimit},
	}
}

func (v *usersView) Init() tea.Cmd {
	if v.denied != nil {
		return nil
	}
	v.loading = true
	return fetchUsers(v.deps, v.params)
}

func fetchUsers(deps *Deps, params api.ListParams) tea.Cmd {
	return func() tea.Msg {
		page, err := cache.Fetch(context.Background(), deps.Cache, cache.KindUsers, params,
			func(ctx context.Context) (*api.UserPage, error) {
				return deps.Client.ListUsers(ctx, params)
			})
		return usersLoadedMsg{page: page, err: err}
	}
}

func (v *usersView) capturingInput() bool {
	return v.formOpen || v.search.Focused()
}

func (v *usersView) Update(msg tea.Msg) (view, tea.Cmd) {
	if v.denied != nil {
		return v, nil
	}

	switch msg := msg.(type) {
	case usersLoadedMsg:
		v.loading = false
		v.page = msg.page
		v.err = msg.err
		if v.page != nil && v.cursor >= len(v.page.Items) {
			v.cursor = 0
		}
		return v, nil

	case userMutatedMsg:
		if msg.err != nil {
			v.deps.Notify.Error("User "+msg.action+" failed", errors.MessageOf(msg.err))
			return v, toastTick()
		}
		v.deps.Notify.Success("User "+msg.action, "")
		v.closeForm()
		v.loading = true
		return v, tea.Batch(fetchUsers(v.deps, v.params), toastTick())

	case tea.KeyMsg:
		if v.formOpen {
			return v.updateForm(msg)
		}
		if v.search.Focused() {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *usersView) updateSearch(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		v.search.Blur()
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)

	if v.search.Value() != before {
		v.params.Query = strings.TrimSpace(v.search.Value())
		v.params.Page = 1
		v.cursor = 0
		v.loading = true
		return v, tea.Batch(cmd, fetchUsers(v.deps, v.params))
	}
	return v, cmd
}

func (v *usersView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "/":
		return v, v.search.Focus()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.page != nil && v.cursor < len(v.page.Items)-1 {
			v.cursor++
		}
	case "n":
		v.openForm(nil)
		return v, textinput.Blink
	case "e", "enter":
		if u, ok := v.selected(); ok {
			v.openForm(&u)
			return v, textinput.Blink
		}
	case "x":
		return v.deleteSelected()
	case "r":
		v.deps.Cache.Invalidate(cache.KindUsers)
		v.loading = true
		return v, fetchUsers(v.deps, v.params)
	}
	return v, nil
}

func (v *usersView) selected() (api.User, bool) {
	if v.page == nil || v.cursor >= len(v.page.Items) {
		return api.User{}, false
	}
	return v.page.Items[v.cursor], true
}

func (v *usersView) deleteSelected() (view, tea.Cmd) {
	u, ok := v.selected()
	if !ok {
		return v, nil
	}
	if me := v.deps.Session.CurrentUser(); me != nil && me.ID == u.ID {
		v.deps.Notify.Error("Cannot delete yourself", "")
		return v, toastTick()
	}

	deps := v.deps
	return v, func() tea.Msg {
		err := deps.Client.DeleteUser(context.Background(), u.ID)
		if err == nil {
			deps.Cache.Invalidate(cache.KindUsers)
		}
		return userMutatedMsg{action: "deleted", err: err}
	}
}

func (v *usersView) openForm(existing *api.User) {
	mk := func(placeholder, value string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		in.SetValue(value)
		return in
	}

	v.editing = existing
	if existing != nil {
		v.inputs = []textinput.Model{
			mk("name", existing.Name),
			mk("email", existing.Email),
			mk("role", existing.Role),
			mk("password (blank to keep)", ""),
		}
	} else {
		v.inputs = []textinput.Model{
			mk("name", ""),
			mk("email", ""),
			mk("role", "customer"),
			mk("password", ""),
		}
	}
	v.focus = 0
	v.fieldErr = ""
	v.inputs[0].Focus()
	v.formOpen = true
}

func (v *usersView) closeForm() {
	v.formOpen = false
	v.editing = nil
	v.inputs = nil
}

func (v *usersView) updateForm(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil
	case "tab", "down":
		v.cycleFocus(false)
		return v, nil
	case "shift+tab", "up":
		v.cycleFocus(true)
		return v, nil
	case "enter":
		if v.focus < userFieldCount-1 {
			v.cycleFocus(false)
			return v, nil
		}
		return v, v.submitForm()
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *usersView) cycleFocus(backwards bool) {
	v.inputs[v.focus].Blur()
	if backwards {
		v.focus = (v.focus + userFieldCount - 1) % userFieldCount
	} else {
		v.focus = (v.focus + 1) % userFieldCount
	}
	v.inputs[v.focus].Focus()
}

func (v *usersView) submitForm() tea.Cmd {
	input := api.UserInput{
		Name:     strings.TrimSpace(v.inputs[userFieldName].Value()),
		Email:    strings.TrimSpace(v.inputs[userFieldEmail].Value()),
		Role:     strings.TrimSpace(v.inputs[userFieldRole].Value()),
		Password: v.inputs[userFieldPassword].Value(),
	}
	if input.Name == "" || input.Email == "" {
		v.fieldErr = "name and email are required"
		return nil
	}
	if v.editing == nil && input.Password == "" {
		v.fieldErr = "password is required for a new user"
		return nil
	}

	v.fieldErr = ""
	deps := v.deps
	editing := v.editing
	return func() tea.Msg {
		ctx := context.Background()
		if editing != nil {
			err := deps.Client.UpdateUser(ctx, editing.ID, input)
			if err == nil {
				deps.Cache.Invalidate(cache.KindUsers)
			}
			return userMutatedMsg{action: "updated", err: err}
		}
		_, err := deps.Client.CreateUser(ctx, input)
		if err == nil {
			deps.Cache.Invalidate(cache.KindUsers)
		}
		return userMutatedMsg{action: "created", err: err}
	}
}

func (v *usersView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Users"))
	b.WriteString("\n")

	if v.denied != nil {
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.denied)))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("esc back"))
		return b.String()
	}

	if v.formOpen {
		return v.viewForm(&b)
	}

	b.WriteString(v.styles.Label.Render("Search ") + v.search.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading users..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
	case v.page == nil || len(v.page.Items) == 0:
		b.WriteString(v.styles.Muted.Render("No users found."))
	default:
		for i, u := range v.page.Items {
			verified := ""
			if u.IsVerified {
				verified = "verified"
			}
			line := fmt.Sprintf("%-25s %-30s %-10s %s", u.Name, u.Email, u.Role, verified)
			if i == v.cursor {
				line = v.styles.Selected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(strconv.Itoa(v.page.Total) + " users"))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("/ search  n new  e edit  x delete  r refresh  esc back"))
	return b.String()
}

func (v *usersView) viewForm(b *strings.Builder) string {
	if v.editing != nil {
		b.WriteString(v.styles.Subtitle.Render("Edit " + v.editing.Email))
	} else {
		b.WriteString(v.styles.Subtitle.Render("New user"))
	}
	b.WriteString("\n")

	labels := []string{"Name     ", "Email    ", "Role     ", "Password "}
	for i, in := range v.inputs {
		b.WriteString(v.styles.Label.Render(labels[i]) + in.View())
		b.WriteString("\n")
	}

	if v.fieldErr != "" {
		b.WriteString(v.styles.Error.Render(v.fieldErr))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("enter submit  tab next field  esc cancel"))
	return b.String()
}
