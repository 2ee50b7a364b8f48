// Package client is a typed client for the payments REST API. Request bodies
// are validated before they are sent and response bodies are decoded through
// the union types of package models.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

var log = logging.Logger("paykit/client")

const maxErrorBody = 1 << 20

// Client talks to the API. It is safe for concurrent use.
type Client struct {
	baseURL         *url.URL
	token           string
	userAgent       string
	httpClient      *http.Client
	metrics         *Metrics
	idempotencyKeys bool

	Customers *CustomersService
	Checkouts *CheckoutsService
	Meters    *MetersService
	Events    *EventsService
	Products  *ProductsService
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := cfg.resolveBaseURL()
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		baseURL:    base,
		token:      cfg.Token,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.Customers = &CustomersService{client: c}
	c.Checkouts = &CheckoutsService{client: c}
	c.Meters = &MetersService{client: c}
	c.Events = &EventsService{client: c}
	c.Products = &ProductsService{client: c}
	return c, nil
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type idempotencyKey struct{}

// ContextWithIdempotencyKey sets the Idempotency-Key sent with POST requests
// made with ctx.
func ContextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// ListParams selects a page of a list endpoint. Zero values use the API defaults.
type ListParams struct {
	Page  int
	Limit int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		if key, ok := ctx.Value(idempotencyKey{}).(string); ok && key != "" {
			req.Header.Set("Idempotency-Key", key)
		} else if c.idempotencyKeys {
			req.Header.Set("Idempotency-Key", uuid.NewString())
		}
	}
	return req, nil
}

// call sends one request and decodes a successful response into out, which
// may be nil. operation names the call in logs and metrics.
func (c *Client) call(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	took := time.Since(start)
	if err != nil {
		c.metrics.observe(operation, 0, took)
		log.Warnw("request failed", "operation", operation, "method", method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.observe(operation, resp.StatusCode, took)
	log.Debugw("request", "operation", operation, "method", method, "path", req.URL.Path,
		"status", resp.StatusCode, "took", took.String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: %w", operation, parseError(resp.StatusCode, data))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", operation, err)
	}
	if err := unions.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func list[T any](ctx context.Context, c *Client, operation, path string, params ListParams) (*models.ListResource[T], error) {
	var page models.ListResource[T]
	if err := c.call(ctx, operation, http.MethodGet, path, params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func resourcePath(collection, id string) (string, error) {
	switch id {
	case "":
		return "", ErrMissingID
	case ".", "..":
		return "", fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return collection + url.PathEscape(id), nil
}
