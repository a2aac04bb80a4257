package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/guard"
)

// productSavedMsg reports a create or update result; id is the saved
// product's id so the form can navigate to its detail page.
type productSavedMsg struct {
	id  int64
	err error
}

// productEditLoader fetches the product before mounting the edit form
type productEditLoader struct {
	deps   *Deps
	styles Styles
	id     int64
	denied error
	err    error
}

func newProductEditLoader(deps *Deps, styles Styles, id int64) *productEditLoader {
	return &productEditLoader{
		deps:   deps,
		styles: styles,
		id:     id,
		denied: guard.RequireAdmin(deps.Session.CurrentUser()),
	}
}

func (v *productEditLoader) Init() tea.Cmd {
	if v.denied != nil {
		return nil
	}
	return fetchProduct(v.deps, v.id)
}

func (v *productEditLoader) Update(msg tea.Msg) (view, tea.Cmd) {
	if v.denied != nil {
		return v, nil
	}
	if loaded, ok := msg.(productLoadedMsg); ok {
		if loaded.err != nil {
			v.err = loaded.err
			return v, nil
		}
		form := newProductFormView(v.deps, v.styles, loaded.product)
		return form, form.Init()
	}
	return v, nil
}

func (v *productEditLoader) View() string {
	if v.denied != nil {
		return v.styles.Error.Render(errors.MessageOf(v.denied))
	}
	if v.err != nil {
		return v.styles.Error.Render(errors.MessageOf(v.err))
	}
	return v.styles.Muted.Render("Loading product...")
}

// productFormView is the admin create/edit form. Price and stock are
// validated locally before any request is made.
type productFormView struct {
	deps   *Deps
	styles Styles

	denied error

	existing *api.Product
	inputs   []textinput.Model
	focus    int

	submitting bool
	fieldErr   string
}

const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldStock
	fieldImages
	fieldCount
)

func newProductFormView(deps *Deps, styles Styles, existing *api.Product) *productFormView {
	mk := func(placeholder, value string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		in.SetValue(value)
		return in
	}

	v := &productFormView{
		deps:     deps,
		styles:   styles,
		denied:   guard.RequireAdmin(deps.Session.CurrentUser()),
		existing: existing,
	}
	if existing != nil {
		desc := ""
		if existing.Description != nil {
			desc = *existing.Description
		}
		v.inputs = []textinput.Model{
			mk("name", existing.Name),
			mk("description", desc),
			mk("price", existing.Price),
			mk("stock", strconv.Itoa(existing.Stock)),
			mk("image paths, comma separated", ""),
		}
	} else {
		v.inputs = []textinput.Model{
			mk("name", ""),
			mk("description", ""),
			mk("price", ""),
			mk("stock", ""),
			mk("image paths, comma separated", ""),
		}
	}
	v.inputs[fieldName].Focus()
	return v
}

func (v *productFormView) Init() tea.Cmd {
	if v.denied != nil {
		return nil
	}
	return textinput.Blink
}

func (v *productFormView) capturingInput() bool { return v.denied == nil }

func (v *productFormView) Update(msg tea.Msg) (view, tea.Cmd) {
	if v.denied != nil {
		return v, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			v.cycleFocus(false)
			return v, nil
		case "shift+tab", "up":
			v.cycleFocus(true)
			return v, nil
		case "esc":
			return v, navigate(RouteProducts)
		case "enter":
			if v.focus < fieldCount-1 {
				v.cycleFocus(false)
				return v, nil
			}
			return v, v.submit()
		}

	case productSavedMsg:
		v.submitting = false
		if msg.err != nil {
			v.deps.Notify.Error("Save failed", errors.MessageOf(msg.err))
			return v, toastTick()
		}
		if v.existing != nil {
			v.deps.Notify.Success("Product updated", "")
		} else {
			v.deps.Notify.Success("Product created", "")
		}
		return v, tea.Batch(toastTick(), navigate(ProductRoute(msg.id)))
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *productFormView) cycleFocus(backwards bool) {
	v.inputs[v.focus].Blur()
	if backwards {
		v.focus = (v.focus + fieldCount - 1) % fieldCount
	} else {
		v.focus = (v.focus + 1) % fieldCount
	}
	v.inputs[v.focus].Focus()
}

// validate builds the API payload, reporting the first invalid field
func (v *productFormView) validate() (api.ProductInput, []string, error) {
	name := strings.TrimSpace(v.inputs[fieldName].Value())
	if name == "" {
		return api.ProductInput{}, nil, errors.New(errors.ErrCodeValidateRequired, "name is required")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(v.inputs[fieldPrice].Value()), 64)
	if err != nil || price <= 0 {
		return api.ProductInput{}, nil, errors.New(errors.ErrCodeValidateNumber, "price must be a positive number")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(v.inputs[fieldStock].Value()))
	if err != nil || stock < 0 {
		return api.ProductInput{}, nil, errors.New(errors.ErrCodeValidateNumber, "stock must be a non-negative integer")
	}

	var paths []string
	for _, p := range strings.Split(v.inputs[fieldImages].Value(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}

	input := api.ProductInput{
		Name:        name,
		Description: strings.TrimSpace(v.inputs[fieldDescription].Value()),
		Price:       price,
		Stock:       stock,
	}
	return input, paths, nil
}

func (v *productFormView) submit() tea.Cmd {
	if err := guard.RequireAdmin(v.deps.Session.CurrentUser()); err != nil {
		v.fieldErr = errors.MessageOf(err)
		return nil
	}

	input, paths, err := v.validate()
	if err != nil {
		v.fieldErr = errors.MessageOf(err)
		return nil
	}

	v.fieldErr = ""
	v.submitting = true
	deps := v.deps
	existing := v.existing
	return func() tea.Msg {
		ctx := context.Background()

		var id int64
		if existing != nil {
			id = existing.ID
			if err := deps.Client.UpdateProduct(ctx, id, input); err != nil {
				return productSavedMsg{err: err}
			}
		} else {
			created, err := deps.Client.CreateProduct(ctx, input)
			if err != nil {
				return productSavedMsg{err: err}
			}
			id = created.ID
		}

		if len(paths) > 0 {
			if err := deps.Client.UploadProductImages(ctx, id, paths); err != nil {
				return productSavedMsg{id: id, err: err}
			}
		}

		deps.Cache.Invalidate(cache.KindProducts)
		deps.Cache.InvalidateParams(cache.KindProduct, id)
		return productSavedMsg{id: id}
	}
}

func (v *productFormView) View() string {
	if v.denied != nil {
		return v.styles.Error.Render(errors.MessageOf(v.denied)) + "\n" +
			v.styles.Help.Render("esc back")
	}

	var b strings.Builder

	if v.existing != nil {
		b.WriteString(v.styles.Title.Render("Edit product"))
	} else {
		b.WriteString(v.styles.Title.Render("New product"))
	}
	b.WriteString("\n")

	labels := []string{"Name        ", "Description ", "Price       ", "Stock       ", "Images      "}
	for i, in := range v.inputs {
		b.WriteString(v.styles.Label.Render(labels[i]) + in.View())
		b.WriteString("\n")
	}

	if v.fieldErr != "" {
		b.WriteString(v.styles.Error.Render(v.fieldErr))
		b.WriteString("\n")
	}
	if v.submitting {
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("enter submit  tab next field  esc cancel"))
	return b.String()
}
