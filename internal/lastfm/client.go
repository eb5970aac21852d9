package lastfm

import (
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

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/version"
)

// DefaultBaseURL is the production Last.fm API root.
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0"

// APIError is a decoded Last.fm error envelope.
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("last.fm api error %d", e.Code)
	}
	return fmt.Sprintf("last.fm api error %d: %s", e.Code, e.Message)
}

// Client provides access to the Last.fm web API.
type Client struct {
	apiKey      string
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestInterval sets the minimum spacing between consecutive requests.
// Zero disables client-side rate limiting.
func WithRequestInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval >= 0 {
			c.minInterval = interval
		}
	}
}

// New creates a Last.fm API client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("last.fm api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   version.UserAgent(),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		minInterval: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// get performs a rate-limited API request for the given method and decodes
// the response body into out. Error envelopes are surfaced as *APIError,
// even when the API reports them with a 200 status.
func (c *Client) get(ctx context.Context, method string, params url.Values, out any) error {
	if err := c.waitForSlot(ctx); err != nil {
		return err
	}

	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return fmt.Errorf("parse last.fm url: %w", err)
	}
	params.Set("method", method)
	params.Set("format", "json")
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		return &apiErr
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("last.fm %s returned %d", method, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// waitForSlot enforces the minimum spacing between requests.
func (c *Client) waitForSlot(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}

	c.mu.Lock()
	now := time.Now()
	next := c.lastRequest.Add(c.minInterval)
	var wait time.Duration
	if next.After(now) {
		wait = next.Sub(now)
		c.lastRequest = next
	} else {
		c.lastRequest = now
	}
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
