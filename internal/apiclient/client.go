// Package apiclient is the HTTP/JSON client for the recruiting platform
// backend. Authenticated calls attach a bearer token when one is set.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// Client talks to the platform REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer token, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the backend's error shape.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (b errorBody) message() string {
	if b.Detail != "" {
		return b.Detail
	}
	return b.Error
}

// doJSON executes one request. A non-nil out is filled from the response
// body. Non-2xx responses become *domain.FetchError carrying the server
// detail; 401/403 on auth endpoints are mapped by the callers.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.FetchError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.FetchError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &domain.FetchError{StatusCode: resp.StatusCode, Message: eb.message()}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &domain.FetchError{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}

// upload executes a multipart-free raw upload. The backend accepts the file
// bytes directly with the filename in a query parameter.
func (c *Client) upload(ctx context.Context, path, filename string, data []byte, out interface{}) error {
	q := url.Values{"filename": {filename}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path+"?"+q.Encode(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.FetchError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.FetchError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		return &domain.FetchError{StatusCode: resp.StatusCode, Message: eb.message()}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &domain.FetchError{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}
