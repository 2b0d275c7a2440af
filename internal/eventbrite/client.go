package eventbrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/metrics"
)

const (
	DefaultBaseURL = "https://www.eventbriteapi.com/v3"
	APIKeyEnv      = "EVENTBRITE_API_KEY"
	UserAgent      = "event-extractor/1.0 (github.com/pfrederiksen/event-extractor)"
	Timeout        = 30 * time.Second
)

// Client is an Eventbrite API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        *logger.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMetrics records request and dedup counters on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for progress and retry messages
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSleep replaces the function used to wait between rate-limit retries.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient creates a client authenticated with apiKey. An empty apiKey falls
// back to the EVENTBRITE_API_KEY environment variable; if that is empty too,
// ErrMissingAPIKey is returned and no request is ever made.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		log:   logger.Default(),
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes one logical API call; it may be sent several times.
type request struct {
	name   string // metrics/log label, e.g. "search"
	method string
	path   string
	query  url.Values
	body   []byte
}

// do performs req, retrying on 429 as described in retry.go, and decodes a
// successful JSON response into out.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	wait := newBackOff()

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := c.send(ctx, req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return c.decode(req, resp, out)
		}

		delay := wait.NextBackOff()
		if d, ok := retryAfter(resp.Header); ok {
			delay = d
		}
		discard(resp)

		c.metrics.RateLimited(req.name)
		c.log.Warn("Rate limited, retrying", logger.Fields{
			"endpoint": req.path,
			"attempt":  attempt + 1,
			"wait":     delay.String(),
		})
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}

	// Retries exhausted: one last try, whatever it returns is final.
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	return c.decode(req, resp, out)
}

// send issues a single HTTP request
func (c *Client) send(ctx context.Context, req request) (*http.Response, error) {
	reqURL := c.baseURL + req.path
	if len(req.query) > 0 {
		reqURL += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	c.metrics.ObserveRequest(req.name, resp.StatusCode)
	return resp, nil
}

// decode turns resp into either out or an *HTTPError. It always closes the body.
func (c *Client) decode(req request, resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(req.method, req.path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", req.path, err)
	}
	return nil
}

// discard drains and closes a response we are not going to use
func discard(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10)) //nolint:errcheck
	resp.Body.Close()
}
