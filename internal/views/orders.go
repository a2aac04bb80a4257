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

// ordersLoadedMsg delivers the order history
type ordersLoadedMsg struct {
	orders []api.Order
	err    error
}

// ordersView lists the current user's orders, newest first as the API
// returns them.
type ordersView struct {
	deps   *Deps
	styles Styles

	orders  []api.Order
	cursor  int
	loading bool
	err     error
}

func newOrdersView(deps *Deps, styles Styles) *ordersView {
	return &ordersView{deps: deps, styles: styles}
}

func (v *ordersView) Init() tea.Cmd {
	v.loading = true
	return fetchOrders(v.deps)
}

func fetchOrders(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		orders, err := cache.Fetch(context.Background(), deps.Cache, cache.KindOrders, nil,
			func(ctx context.Context) ([]api.Order, error) {
				return deps.Client.ListOrders(ctx)
			})
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (v *ordersView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		v.loading = false
		v.orders = msg.orders
		v.err = msg.err
		if v.cursor >= len(v.orders) {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.orders)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.orders) {
				return v, navigate(OrderRoute(v.orders[v.cursor].ID))
			}
		case "r":
			v.deps.Cache.Invalidate(cache.KindOrders)
			v.loading = true
			return v, fetchOrders(v.deps)
		}
	}

	return v, nil
}

func (v *ordersView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Orders"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading orders..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		return b.String()
	case len(v.orders) == 0:
		b.WriteString(v.styles.Muted.Render("No orders yet."))
		return b.String()
	}

	for i, o := range v.orders {
		line := fmt.Sprintf("#%-6d %-10s %10s  %s",
			o.ID, o.Status, renderPrice(o.TotalPrice), o.CreatedAt.Format("2006-01-02 15:04"))
		if i == v.cursor {
			line = v.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("enter details  r refresh  esc back"))
	return b.String()
}

// orderLoadedMsg delivers a single order with its items
type orderLoadedMsg struct {
	order *api.Order
	err   error
}

// orderView shows one order's line items at their order-time prices
type orderView struct {
	deps   *Deps
	styles Styles

	id      int64
	order   *api.Order
	loading bool
	err     error
}

func newOrderView(deps *Deps, styles Styles, id int64) *orderView {
	return &orderView{deps: deps, styles: styles, id: id}
}

func (v *orderView) Init() tea.Cmd {
	v.loading = true
	deps := v.deps
	id := v.id
	return func() tea.Msg {
		order, err := cache.Fetch(context.Background(), deps.Cache, cache.KindOrder, id,
			func(ctx context.Context) (*api.Order, error) {
				return deps.Client.GetOrder(ctx, id)
			})
		return orderLoadedMsg{order: order, err: err}
	}
}

func (v *orderView) Update(msg tea.Msg) (view, tea.Cmd) {
	if loaded, ok := msg.(orderLoadedMsg); ok {
		v.loading = false
		v.order = loaded.order
		v.err = loaded.err
	}
	return v, nil
}

func (v *orderView) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading order..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errors.MessageOf(v.err)))
		return b.String()
	case v.order == nil:
		b.WriteString(v.styles.Muted.Render("Order not found."))
		return b.String()
	}

	o := v.order
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Order #%d", o.ID)))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Status ") + v.styles.Header.Render(o.Status))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Placed ") + o.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString("\n\n")

	for _, item := range o.Items {
		name := fmt.Sprintf("product %d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		b.WriteString(fmt.Sprintf("%-30s %d x %s", name, item.Quantity, renderPrice(item.UnitPrice)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Total ") + v.styles.Header.Render(renderPrice(o.TotalPrice)))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("esc back"))
	return b.String()
}
