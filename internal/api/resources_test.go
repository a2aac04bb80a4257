package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "chair", r.URL.Query().Get("q"))

		_ = json.NewEncoder(w).Encode(ProductPage{
			Items: []Product{
				{ID: 1, Name: "Office chair", Price: "129.99", Stock: 4},
			},
			Total: 1, Page: 1, Limit: 12,
		})
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))

	page, err := client.ListProducts(context.Background(), ListParams{Page: 1, Limit: 12, Query: "chair"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Office chair", page.Items[0].Name)
	assert.Equal(t, 1, page.Total)
}

func TestListProductsOmitsEmptyQuery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasQ := r.URL.Query()["q"]
		assert.False(t, hasQ, "empty search text must not be sent")
		_ = json.NewEncoder(w).Encode(ProductPage{})
	})
	client, _ := newTestClient(t, handler, nil)

	_, err := client.ListProducts(context.Background(), ListParams{Page: 1, Limit: 12})
	require.NoError(t, err)
}

func TestProductCRUD(t *testing.T) {
	var gotMethod, gotPath string
	var gotInput ProductInput
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotInput)
		}
		_ = json.NewEncoder(w).Encode(Product{ID: 5, Name: gotInput.Name})
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))
	ctx := context.Background()

	input := ProductInput{Name: "Desk", Description: "Oak desk", Price: 249.5, Stock: 3}

	created, err := client.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/products", gotPath)
	assert.Equal(t, 249.5, gotInput.Price)

	require.NoError(t, client.UpdateProduct(ctx, 5, input))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/products/5", gotPath)

	require.NoError(t, client.DeleteProduct(ctx, 5))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/products/5", gotPath)
}

func TestUploadProductImages(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "front.png")
	require.NoError(t, os.WriteFile(img, []byte("png-bytes"), 0o644))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/products/9/images", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 1)
		assert.Equal(t, "front.png", files[0].Filename)

		// Bearer token must still be injected on multipart requests.
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))

	require.NoError(t, client.UploadProductImages(context.Background(), 9, []string{img}))
}

func TestUploadProductImagesMissingFile(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler(), nil)

	err := client.UploadProductImages(context.Background(), 9, []string{"/does/not/exist.png"})
	require.Error(t, err)
}

func TestCartOperations(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode([]CartItem{
				{ID: 1, ProductID: 2, Quantity: 2, Product: Product{ID: 2, Name: "Lamp", Price: "10.00"}},
			})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))
	ctx := context.Background()

	items, err := client.ListCart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].Product.Name)

	require.NoError(t, client.AddCartItem(ctx, 2, 3))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/cart", gotPath)
	assert.Equal(t, float64(2), gotBody["productId"])
	assert.Equal(t, float64(3), gotBody["quantity"])

	require.NoError(t, client.UpdateCartItem(ctx, 1, 5))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/cart/1", gotPath)

	require.NoError(t, client.RemoveCartItem(ctx, 1))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/cart/1", gotPath)
}

func TestOrders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders":
			_ = json.NewEncoder(w).Encode([]Order{{ID: 3, Status: OrderStatusPending, TotalPrice: "25.00"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/3":
			_ = json.NewEncoder(w).Encode(Order{
				ID: 3, Status: OrderStatusPending, TotalPrice: "25.00",
				Items: []OrderItem{
					{ID: 1, ProductID: 2, Quantity: 2, UnitPrice: "10.00", Product: &OrderItemProduct{ID: 2, Name: "Lamp"}},
					{ID: 2, ProductID: 4, Quantity: 1, UnitPrice: "5.00"},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
			_ = json.NewEncoder(w).Encode(Order{ID: 4, Status: OrderStatusPending, TotalPrice: "25.00"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))
	ctx := context.Background()

	orders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "25.00", orders[0].TotalPrice)

	order, err := client.GetOrder(ctx, 3)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Lamp", order.Items[0].Product.Name)
	assert.Nil(t, order.Items[1].Product)

	placed, err := client.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), placed.ID)
}

func TestUsers(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		switch {
		case r.Method == http.MethodGet:
			assert.Equal(t, "smith", r.URL.Query().Get("q"))
			_ = json.NewEncoder(w).Encode(UserPage{
				Items: []User{{ID: 1, Email: "smith@example.com", Name: "Smith", Role: "user"}},
				Total: 1, Page: 1, Limit: 20,
			})
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(User{ID: 8, Email: "new@example.com"})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	client, _ := newTestClient(t, handler, StaticToken("tok"))
	ctx := context.Background()

	page, err := client.ListUsers(ctx, ListParams{Page: 1, Limit: 20, Query: "smith"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	created, err := client.CreateUser(ctx, UserInput{Email: "new@example.com", Name: "New", Role: "user", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.ID)
	assert.Equal(t, "pw", gotBody["password"])

	// Empty password must be omitted on update so the server keeps the old one.
	require.NoError(t, client.UpdateUser(ctx, 8, UserInput{Email: "new@example.com", Name: "New", Role: "admin"}))
	_, hasPassword := gotBody["password"]
	assert.False(t, hasPassword)

	require.NoError(t, client.DeleteUser(ctx, 8))
}
