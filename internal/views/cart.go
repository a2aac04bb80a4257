package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/errors"
)

// cartLoadedMsg delivers the cart contents
type cartLoadedMsg struct {
	items []api.CartItem
	err   error
}

// orderPlacedMsg reports checkout completion with the new order
type orderPlacedMsg struct {
	order *api.Order
	err   error
}

// cartView lists the cart with quantity editing and checkout
type cartView struct {
	deps   *Deps
	styles Styles

	items   []api.CartItem
	cursor  int
	loading bool
	placing bool
	err     error
}

func newCartView(deps *Deps, styles Styles) *cartView {
	return &cartView{deps: deps, styles: styles}
}

func (v *cartView) Init() tea.Cmd {
	v.loading = true
	return fetchCart(v.deps)
}

func fetchCart(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		items, err := cache.Fetch(context.Background(), deps.Cache, cache.KindCart, nil,
			func(ctx context.Context) ([]api.CartItem, error) {
				return deps.Client.ListCart(ctx)
			})
		return cartLoadedMsg{items: items, err: err}
	}
}

func (v *cartView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		v.loading = false
		v.items = msg.items
		v.err = msg.err
		if v.cursor >= len(v.items) {
			v.cursor = 0
		}
		return v, nil

	case cartMutatedMsg:
		if msg.err != nil {
			v.deps.Notify.Error("Cart update failed", errors.MessageOf(msg.err))
			return v, toastTick()
		}
		v.loading = true
		return v, tea.Batch(fetchCart(v.deps), toastTick())

	case orderPlacedMsg:
		v.placing = false
		if msg.err != nil {
			v.deps.Notify.Error("Checkout failed", errors.MessageOf(msg.err))
			return v, toastTick()
		}
		v.deps.Notify.Success(fmt.Sprintf("Order placed #%d", msg.order.ID), "")
		return v, tea.Batch(toastTick(), navigate(OrderRoute(msg.order.ID)))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *cartView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case "+", "=":
		return v.adjustQuantity(1)
	case "-":
		return v.adjustQuantity(-1)
	case "x":
		return v.removeSelected()
	case "enter":
		return v, v.placeOrder()
	case "r":
		v.deps.Cache.Invalidate(cache.KindCart)
		v.loading = true
		return v, fetchCart(v.deps)
	}
	return v, nil
}

// adjustQuantity changes the selected line by delta, clamped to the
// product's stock. A no-op change issues no request.
func (v *cartView) adjustQuantity(delta int) (view, tea.Cmd) {
	if v.cursor >= len(v.items) {
		return v, nil
	}
	item := v.items[v.cursor]
	next := ClampQuantity(item.Quantity+delta, item.Product.Stock)
	if next == 0 || next == item.Quantity {
		return v, nil
	}

	deps := v.deps
	return v, func() tea.Msg {
		err := deps.Client.UpdateCartItem(context.Background(), item.ID, next)
		if err == nil {
			deps.Cache.Invalidate(cache.KindCart)
		}
		return cartMutatedMsg{err: err}
	}
}

func (v *cartView) removeSelected() (view, tea.Cmd) {
	if v.cursor >= len(v.items) {
		return v, nil
	}
	item := v.items[v.cursor]

	deps := v.deps
	return v, func() tea.Msg {
		err := deps.Client.RemoveCartItem(context.Background(), item.ID)
		if err == nil {
			deps.Cache.Invalidate(cache.KindCart)
		}
		return cartMutatedMsg{err: err}
	}
}

// placeOrder checks out the whole cart; the cart and the order list
// are both stale afterwards.
func (v *cartView) placeOrder() tea.Cmd {
	if len(v.items) == 0 {
		v.deps.Notify.Error("Cart is empty", "")
		return toastTick()
	}

	v.placing = true
	deps := v.deps
	return func() tea.Msg {
		order, err := deps.Client.PlaceOrder(context.Background())
		if err == nil {
			deps.Cache.Invalidate(cache.KindCart)
			deps.Cache.Invalidate(cache.KindOrders)
		}
		return orderPlacedMsg{order: order, err: err}
	}
}

func (v *cartView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Cart"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading cart..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		return b.String()
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("P products  esc back"))
		return b.String()
	}

	for i, item := range v.items {
		line := fmt.Sprintf("%-30s %s", item.Product.Name, renderLineTotal(item))
		if i == v.cursor {
			line = v.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Subtotal ") +
		v.styles.Header.Render("$"+api.FormatPrice(api.Subtotal(v.items))))
	b.WriteString("\n")

	if v.placing {
		b.WriteString(v.styles.Muted.Render("Placing order..."))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("+/- quantity  x remove  enter place order  r refresh  esc back"))
	return b.String()
}
