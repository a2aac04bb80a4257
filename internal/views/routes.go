package views

import (
	"fmt"
	"strconv"
	"strings"
)

// Route constants mirror the application's page structure. Detail pages
// are built through the helper constructors below.
const (
	RouteHome       = "/"
	RouteLogin      = "/login"
	RouteSignup     = "/signup"
	RouteProducts   = "/products"
	RouteProductNew = "/products/new"
	RouteCart       = "/cart"
	RouteOrders     = "/orders"
	RouteUsers      = "/users"
)

// ProductRoute returns the detail route for a product
func ProductRoute(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}

// ProductEditRoute returns the edit-form route for a product
func ProductEditRoute(id int64) string {
	return fmt.Sprintf("/products/%d/edit", id)
}

// OrderRoute returns the detail route for an order
func OrderRoute(id int64) string {
	return fmt.Sprintf("/orders/%d", id)
}

// IsPublicRoute reports whether the route renders without a session
func IsPublicRoute(route string) bool {
	return route == RouteLogin || route == RouteSignup
}

// productRouteID extracts the product id from /products/{id} and
// /products/{id}/edit routes. The second result distinguishes the two.
func productRouteID(route string) (id int64, edit, ok bool) {
	rest, found := strings.CutPrefix(route, "/products/")
	if !found || rest == "" {
		return 0, false, false
	}
	if tail, isEdit := strings.CutSuffix(rest, "/edit"); isEdit {
		rest, edit = tail, true
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false, false
	}
	return id, edit, true
}

// orderRouteID extracts the order id from an /orders/{id} route
func orderRouteID(route string) (int64, bool) {
	rest, found := strings.CutPrefix(route, "/orders/")
	if !found || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
