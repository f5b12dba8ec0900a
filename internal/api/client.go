// Package api provides the HTTP client for the SpeseCasa REST API.
//
// One shared Client instance is injected into every page and command. It
// attaches the bearer token to each request and nothing else: no caching,
// no retries, no deduplication. Callers handle their own errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spesecasa/cassa/internal/logx"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

// ErrUnauthorized indicates the bearer token is missing, expired or invalid.
var ErrUnauthorized = errors.New("api: unauthorized (session expired or invalid)")

// APIError is a non-2xx response, carrying the server-supplied detail.
type APIError struct {
	Status    int
	Detail    string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", http.StatusText(e.Status), e.Status)
}

// Is reports 401/403 responses as ErrUnauthorized so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// NetworkError is a request that never produced a server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "api: request failed: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// Client talks to the SpeseCasa API. The token is guarded because login
// and logout swap it from the update loop while fetch commands read it
// from their own goroutines.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL. An empty token means the
// client is unauthenticated; only /token and the password-recovery endpoints
// work without one.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

// SetToken swaps the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PostForm performs a form-encoded POST. The token endpoint requires this
// wire format; everything else is JSON.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send attaches shared headers, executes the request and decodes the result.
func (c *Client) send(req *http.Request, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("User-Agent", "cassa/1.0")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logx.L().Warn().Str("request_id", reqID).Str("url", req.URL.Path).
			Err(err).Msg("request failed")
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: reqID}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		logx.L().Warn().Str("request_id", reqID).Str("url", req.URL.Path).
			Int("status", resp.StatusCode).Str("detail", apiErr.Detail).Msg("api error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: parsing response: %w", err)
	}
	return nil
}
