package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/guard"
)

// productLoadedMsg delivers a single product to the detail view
type productLoadedMsg struct {
	product *api.Product
	err     error
}

// productDeletedMsg reports the outcome of an admin delete
type productDeletedMsg struct{ err error }

// productView shows one product with an add-to-cart quantity selector
type productView struct {
	deps   *Deps
	styles Styles

	id       int64
	product  *api.Product
	quantity int
	loading  bool
	err      error
}

func newProductView(deps *Deps, styles Styles, id int64) *productView {
	return &productView{deps: deps, styles: styles, id: id, quantity: 1}
}

func (v *productView) Init() tea.Cmd {
	v.loading = true
	return fetchProduct(v.deps, v.id)
}

func fetchProduct(deps *Deps, id int64) tea.Cmd {
	return func() tea.Msg {
		product, err := cache.Fetch(context.Background(), deps.Cache, cache.KindProduct, id,
			func(ctx context.Context) (*api.Product, error) {
				return deps.Client.GetProduct(ctx, id)
			})
		return productLoadedMsg{product: product, err: err}
	}
}

func (v *productView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case productLoadedMsg:
		v.loading = false
		v.product = msg.product
		v.err = msg.err
		if v.product != nil {
			v.quantity = ClampQuantity(v.quantity, v.product.Stock)
		}
		return v, nil

	case cartMutatedMsg:
		if msg.err != nil {
			v.deps.Notify.Error("Could not add to cart", errors.MessageOf(msg.err))
		} else {
			v.deps.Notify.Success("Added to cart", fmt.Sprintf("%d x %s", v.quantity, v.product.Name))
		}
		return v, toastTick()

	case productDeletedMsg:
		if msg.err != nil {
			v.deps.Notify.Error("Delete failed", errors.MessageOf(msg.err))
			return v, toastTick()
		}
		v.deps.Notify.Success("Product deleted", "")
		return v, tea.Batch(toastTick(), navigate(RouteProducts))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *productView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	if v.product == nil {
		return v, nil
	}

	switch msg.String() {
	case "+", "=", "up":
		v.quantity = ClampQuantity(v.quantity+1, v.product.Stock)
	case "-", "down":
		v.quantity = ClampQuantity(v.quantity-1, v.product.Stock)
	case "a", "enter":
		return v, v.addToCart()
	case "e":
		if err := guard.RequireAdmin(v.deps.Session.CurrentUser()); err != nil {
			v.deps.Notify.Error("Admins only", errors.MessageOf(err))
			return v, toastTick()
		}
		return v, navigate(ProductEditRoute(v.id))
	case "d":
		if err := guard.RequireAdmin(v.deps.Session.CurrentUser()); err != nil {
			v.deps.Notify.Error("Admins only", errors.MessageOf(err))
			return v, toastTick()
		}
		return v, v.deleteProduct()
	}
	return v, nil
}

// addToCart submits the clamped quantity; an out-of-stock product
// never issues a request.
func (v *productView) addToCart() tea.Cmd {
	qty := ClampQuantity(v.quantity, v.product.Stock)
	if qty == 0 {
		v.deps.Notify.Error("Out of stock", v.product.Name)
		return toastTick()
	}

	deps := v.deps
	id := v.product.ID
	return func() tea.Msg {
		err := deps.Client.AddCartItem(context.Background(), id, qty)
		if err == nil {
			deps.Cache.Invalidate(cache.KindCart)
		}
		return cartMutatedMsg{err: err}
	}
}

func (v *productView) deleteProduct() tea.Cmd {
	deps := v.deps
	id := v.id
	return func() tea.Msg {
		err := deps.Client.DeleteProduct(context.Background(), id)
		if err == nil {
			deps.Cache.Invalidate(cache.KindProducts)
			deps.Cache.InvalidateParams(cache.KindProduct, id)
		}
		return productDeletedMsg{err: err}
	}
}

func (v *productView) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading product..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		return b.String()
	case v.product == nil:
		b.WriteString(v.styles.Muted.Render("Product not found."))
		return b.String()
	}

	p := v.product
	b.WriteString(v.styles.Title.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(v.styles.Value.Render(describe(*p)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Label.Render("Price  ") + v.styles.Header.Render(renderPrice(p.Price)))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Stock  ") + stockLabel(p.Stock))
	b.WriteString("\n")

	if len(p.Images) > 0 {
		b.WriteString(v.styles.Label.Render("Images "))
		urls := make([]string, len(p.Images))
		for i, img := range p.Images {
			urls[i] = img.URL
		}
		b.WriteString(v.styles.Muted.Render(strings.Join(urls, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.Stock > 0 {
		b.WriteString(v.styles.Label.Render("Quantity ") + v.styles.Selected.Render(strconv.Itoa(v.quantity)))
	} else {
		b.WriteString(v.styles.Error.Render("Out of stock"))
	}
	b.WriteString("\n")

	help := "+/- quantity  a add to cart  esc back"
	if v.deps.Session.CurrentUser().IsAdmin() {
		help += "  e edit  d delete"
	}
	b.WriteString(v.styles.Help.Render(help))
	return b.String()
}
