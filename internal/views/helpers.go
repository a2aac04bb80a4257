package views

import (
	"fmt"

	"github.com/commercehq/shopctl/internal/api"
)

// ClampQuantity bounds a requested quantity to [1, stock]. A product
// with no stock yields zero, which callers treat as "cannot add".
func ClampQuantity(requested, stock int) int {
	if stock <= 0 {
		return 0
	}
	if requested < 1 {
		return 1
	}
	if requested > stock {
		return stock
	}
	return requested
}

// renderPrice formats a decimal price string for display, falling back
// to the raw string when it does not parse.
func renderPrice(price string) string {
	v, err := api.ParsePrice(price)
	if err != nil {
		return "$" + price
	}
	return "$" + api.FormatPrice(v)
}

// renderLineTotal formats quantity x unit price for a cart line
func renderLineTotal(item api.CartItem) string {
	return fmt.Sprintf("%d x %s = $%s", item.Quantity, renderPrice(item.Product.Price), api.FormatPrice(item.LineTotal()))
}

// describe returns a product description or a muted placeholder
func describe(p api.Product) string {
	if p.Description == nil || *p.Description == "" {
		return "(no description)"
	}
	return *p.Description
}

// stockLabel renders a stock count with an out-of-stock marker
func stockLabel(stock int) string {
	if stock <= 0 {
		return "out of stock"
	}
	return fmt.Sprintf("%d in stock", stock)
}
