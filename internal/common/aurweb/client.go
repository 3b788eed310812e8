// Package aurweb is a client for the AUR web interfaces: the RPC v5 info
// endpoint and raw build recipe retrieval from cgit.
package aurweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
)

var (
	// ErrRequestFailed indicates an AUR web request did not succeed
	ErrRequestFailed = errors.New("AUR request failed")
	// ErrAPIError indicates the RPC endpoint returned an error response
	ErrAPIError = errors.New("AUR RPC error")
)

// PackageInfo is a single record returned by the RPC info endpoint.
// Version is the combined "pkgver-pkgrel" string.
type PackageInfo struct {
	Name        string `json:"Name"`
	PackageBase string `json:"PackageBase"`
	Version     string `json:"Version"`
}

// infoResponse is the RPC v5 response envelope.
type infoResponse struct {
	Type        string        `json:"type"`
	Error       string        `json:"error,omitempty"`
	ResultCount int           `json:"resultcount"`
	Results     []PackageInfo `json:"results"`
}

// Client handles communication with the AUR web interfaces.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	// MaxTries bounds retry attempts per request
	MaxTries uint
}

// NewClient creates a new AUR web client with default settings.
func NewClient() *Client {
	return &Client{
		BaseURL:   "https://aur.archlinux.org",
		UserAgent: "archwatch/1.0",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		MaxTries: 3,
	}
}

// get fetches a URL, retrying transient failures with exponential backoff.
// Server errors (5xx) and network errors are retried; other non-200
// statuses fail immediately.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.UserAgent)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.MaxTries),
	)
}

// Info performs a bulk package lookup by name against the RPC v5 info
// endpoint. Names that are not in the AUR are simply absent from the
// result - that is not an error.
func (c *Client) Info(ctx context.Context, names []string) ([]PackageInfo, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, name := range names {
		query.Add("arg[]", name)
	}
	rawURL := fmt.Sprintf("%s/rpc/v5/info?%s", c.BaseURL, query.Encode())

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var resp infoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode AUR info response: %w", err)
	}
	if resp.Type == "error" {
		return nil, fmt.Errorf("%w: %s", ErrAPIError, resp.Error)
	}

	return resp.Results, nil
}

// Srcinfo retrieves the raw .SRCINFO text for a package base from cgit.
func (c *Client) Srcinfo(ctx context.Context, base string) (string, error) {
	rawURL := fmt.Sprintf("%s/cgit/aur.git/plain/.SRCINFO?h=%s", c.BaseURL, url.QueryEscape(base))

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
