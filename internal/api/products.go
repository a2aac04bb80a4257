package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/commercehq/shopctl/internal/errors"
)

// ListParams are the query parameters for paginated listings
type ListParams struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Query string `json:"q"`
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	return q
}

// ProductInput is the create/update payload for a product
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ListProducts returns a page of the catalog, optionally filtered by search text
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	var out ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", params.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct returns a single product by id
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product and returns it
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product's fields
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, input, nil)
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

// UploadProductImages uploads image files for a product as a multipart request.
// The API expects every file under the "files" field.
func (c *Client) UploadProductImages(ctx context.Context, id int64, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, path := range paths {
		if err := appendFilePart(writer, path); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeAPIEncode, "failed to finalize upload", err)
	}

	reqURL := fmt.Sprintf("%s/products/%d/images", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIEncode, "failed to create upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

func appendFilePart(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to open image file: %s", path), err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIEncode, "failed to build upload form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read image file: %s", path), err)
	}
	return nil
}
