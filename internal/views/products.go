package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/guard"
)

const productsPageLimit = 20

// productsLoadedMsg delivers a catalog page to the list view
type productsLoadedMsg struct {
	page *api.ProductPage
	err  error
}

// cartMutatedMsg reports the outcome of a cart write from any view
type cartMutatedMsg struct{ err error }

// productsView is the searchable catalog listing
type productsView struct {
	deps   *Deps
	styles Styles

	search  textinput.Model
	page    *api.ProductPage
	params  api.ListParams
	cursor  int
	loading bool
	err     error
}

func newProductsView(deps *Deps, styles Styles) *productsView {
	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 80

	return &productsView{
		deps:   deps,
		styles: styles,
		search: search,
		params: api.ListParams{Page: 1, Limit: productsPageLimit},
	}
}

func (v *productsView) Init() tea.Cmd {
	v.loading = true
	return fetchProducts(v.deps, v.params)
}

func fetchProducts(deps *Deps, params api.ListParams) tea.Cmd {
	return func() tea.Msg {
		page, err := cache.Fetch(context.Background(), deps.Cache, cache.KindProducts, params,
			func(ctx context.Context) (*api.ProductPage, error) {
				return deps.Client.ListProducts(ctx, params)
			})
		return productsLoadedMsg{page: page, err: err}
	}
}

func (v *productsView) capturingInput() bool {
	return v.search.Focused()
}

func (v *productsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		v.loading = false
		v.page = msg.page
		v.err = msg.err
		if v.page != nil && v.cursor >= len(v.page.Items) {
			v.cursor = 0
		}
		return v, nil

	case cartMutatedMsg:
		if msg.err != nil {
			v.deps.Notify.Error("Could not add to cart", errors.MessageOf(msg.err))
		} else {
			v.deps.Notify.Success("Added to cart", "")
		}
		return v, toastTick()

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

// updateSearch feeds keystrokes to the search input and refetches the
// list on every change, so results track the query as it is typed.
func (v *productsView) updateSearch(msg tea.KeyMsg) (view, tea.Cmd) {
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
		return v, tea.Batch(cmd, fetchProducts(v.deps, v.params))
	}
	return v, cmd
}

func (v *productsView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
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
	case "left":
		if v.params.Page > 1 {
			v.params.Page--
			v.loading = true
			return v, fetchProducts(v.deps, v.params)
		}
	case "right":
		if v.page != nil && v.params.Page*v.params.Limit < v.page.Total {
			v.params.Page++
			v.loading = true
			return v, fetchProducts(v.deps, v.params)
		}
	case "enter":
		if p, ok := v.selected(); ok {
			return v, navigate(ProductRoute(p.ID))
		}
	case "a":
		if p, ok := v.selected(); ok {
			return v, v.addToCart(p)
		}
	case "n":
		if err := guard.RequireAdmin(v.deps.Session.CurrentUser()); err != nil {
			v.deps.Notify.Error("Admins only", errors.MessageOf(err))
			return v, toastTick()
		}
		return v, navigate(RouteProductNew)
	case "r":
		v.deps.Cache.Invalidate(cache.KindProducts)
		v.loading = true
		return v, fetchProducts(v.deps, v.params)
	}
	return v, nil
}

func (v *productsView) selected() (api.Product, bool) {
	if v.page == nil || v.cursor >= len(v.page.Items) {
		return api.Product{}, false
	}
	return v.page.Items[v.cursor], true
}

// addToCart adds one unit of the product and invalidates the cart
func (v *productsView) addToCart(p api.Product) tea.Cmd {
	if ClampQuantity(1, p.Stock) == 0 {
		v.deps.Notify.Error("Out of stock", p.Name)
		return toastTick()
	}
	deps := v.deps
	return func() tea.Msg {
		err := deps.Client.AddCartItem(context.Background(), p.ID, 1)
		if err == nil {
			deps.Cache.Invalidate(cache.KindCart)
		}
		return cartMutatedMsg{err: err}
	}
}

func (v *productsView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Products"))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Search ") + v.search.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading products..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
	case v.page == nil || len(v.page.Items) == 0:
		b.WriteString(v.styles.Muted.Render("No products found."))
	default:
		for i, p := range v.page.Items {
			line := fmt.Sprintf("%-30s %10s  %s", p.Name, renderPrice(p.Price), stockLabel(p.Stock))
			if i == v.cursor {
				line = v.styles.Selected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d products, page %d", v.page.Total, v.params.Page)))
	}

	b.WriteString("\n")
	help := "/ search  enter details  a add to cart  left/right page  r refresh"
	if v.deps.Session.CurrentUser().IsAdmin() {
		help += "  n new product"
	}
	b.WriteString(v.styles.Help.Render(help))
	return b.String()
}
