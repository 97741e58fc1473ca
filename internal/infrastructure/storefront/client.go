// Package storefront talks to the Next.js storefront's cache revalidation endpoint.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no storefront URL is set
var ErrNotConfigured = errors.New("storefront url is not configured")

// Tag names understood by the storefront
const (
	TagProducts = "products"
)

// Client triggers storefront cache revalidation
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient creates a client. An empty baseURL yields a client whose
// Revalidate returns ErrNotConfigured.
func NewClient(baseURL, secret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    httpClient,
	}
}

// Enabled reports whether a storefront URL is configured
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// RevalidateURL builds GET {base}/api/revalidate?tags=...&secret=...;
// the secret is omitted when unset.
func (c *Client) RevalidateURL(tags ...string) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}
	u, err := url.Parse(c.baseURL + "/api/revalidate")
	if err != nil {
		return "", fmt.Errorf("invalid storefront url: %w", err)
	}
	q := u.Query()
	q.Set("tags", strings.Join(tags, ","))
	if c.secret != "" {
		q.Set("secret", c.secret)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Revalidate asks the storefront to drop its cache for the tags.
// There is no retry; a non-2xx response is returned as an error.
func (c *Client) Revalidate(ctx context.Context, tags ...string) error {
	target, err := c.RevalidateURL(tags...)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build revalidate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate storefront: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("storefront revalidation failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
