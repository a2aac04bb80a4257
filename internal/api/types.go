package api

import (
	"fmt"
	"strconv"
	"time"
)

// RoleAdmin is the role the API grants administrative users
const RoleAdmin = "admin"

// User represents an application user
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions,omitempty"`
	IsVerified  bool       `json:"isVerified,omitempty"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProductImage is an uploaded image attached to a product
type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
}

// Product represents a catalog product.
// Price is a decimal string exactly as the API sends it.
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Price       string         `json:"price"`
	Stock       int            `json:"stock"`
	Images      []ProductImage `json:"images,omitempty"`
}

// ProductPage is a paginated product listing
type ProductPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// CartItem is one line of the current user's cart
type CartItem struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// OrderItemProduct is the product summary embedded in an order item
type OrderItemProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderItem is one line of a placed order, priced at order time
type OrderItem struct {
	ID        int64             `json:"id"`
	ProductID int64             `json:"productId"`
	Quantity  int               `json:"quantity"`
	UnitPrice string            `json:"unitPrice"`
	Product   *OrderItemProduct `json:"product,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID         int64       `json:"id"`
	Status     string      `json:"status"`
	TotalPrice string      `json:"totalPrice"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items,omitempty"`
}

// UserPage is a paginated user listing
type UserPage struct {
	Items []User `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// ParsePrice parses a decimal price string as sent by the API
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return v, nil
}

// FormatPrice renders an amount the way the API does, two decimal places
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Subtotal sums price x quantity across cart items.
// Unparseable prices count as zero; the API owns price validity.
func Subtotal(items []CartItem) float64 {
	var sum float64
	for _, item := range items {
		price, err := ParsePrice(item.Product.Price)
		if err != nil {
			continue
		}
		sum += price * float64(item.Quantity)
	}
	return sum
}

// LineTotal is price x quantity for a single cart line
func (i CartItem) LineTotal() float64 {
	price, err := ParsePrice(i.Product.Price)
	if err != nil {
		return 0
	}
	return price * float64(i.Quantity)
}
