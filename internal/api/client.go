// Package api is the HTTP client for the shop management API.
//
// The client is an explicit configuration object constructed once per
// session and passed to call sites; token injection happens through a
// TokenSource rather than module-level mutable state. Errors are not
// retried and propagate to the caller classified by status code.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/log"
)

// TokenSource supplies the bearer token for outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed value, mainly for tests.
type StaticToken string

// Token returns the static token value
func (s StaticToken) Token() string { return string(s) }

// Config holds client configuration
type Config struct {
	// BaseURL is the API base path including the /api suffix
	BaseURL string

	// Tokens supplies the bearer token; may be nil for unauthenticated use
	Tokens TokenSource

	// HTTPClient overrides the default HTTP client (30s timeout)
	HTTPClient *http.Client

	// Logger receives request/response debug logs; defaults to the global logger
	Logger *log.Logger
}

// Client is the shop management API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
}

// NewClient creates a new API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "API base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured API base path
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do builds and sends a JSON request and decodes the response into out.
// A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAPIEncode, "failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIEncode, "failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, out)
}

// send dispatches a request, injecting the bearer token unless the caller
// already set an explicit Authorization header.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("request failed",
			"method", req.Method, "url", req.URL.String())
		return nil, errors.NewTransportError(err)
	}

	c.logger.Debug("request complete",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return resp, nil
}

// errorBody is the error payload shape the API uses
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse classifies non-2xx responses and decodes success payloads
func (c *Client) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		msg := serverMessage(raw, resp.StatusCode)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New(errors.ErrCodeAuthTokenRejected, msg)
		case http.StatusForbidden:
			return errors.New(errors.ErrCodeAuthzForbidden, msg)
		case http.StatusNotFound:
			return errors.New(errors.ErrCodeAPINotFound, msg)
		default:
			return errors.New(errors.ErrCodeAPIStatus, msg)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
		}
	}

	return nil
}

// serverMessage extracts the error message the server sent, falling back
// to the raw body or the bare status code.
func serverMessage(raw []byte, status int) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if text != "" {
		return fmt.Sprintf("request failed with status %d: %s", status, text)
	}
	return fmt.Sprintf("request failed with status %d", status)
}
