package questions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIPath is the route serving the question bank.
const APIPath = "/api/questions"

// maxBodySize caps the bank payload read from the network.
const maxBodySize = 4 << 20

// Client fetches the question list from a running question API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Source = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// NewClient creates a Client for the API at baseURL (scheme and host,
// e.g. "http://localhost:8080").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the full endpoint URL.
func (c *Client) URL() string {
	return c.baseURL + APIPath
}

// Fetch retrieves and validates the question list. Any failure, including
// a non-200 status or a malformed body, is returned as a *LoadError.
func (c *Client) Fetch(ctx context.Context) ([]Question, error) {
	url := c.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{
			Source:     url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("read body: %w", err)}
	}

	qs, err := decode(data)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	return qs, nil
}
