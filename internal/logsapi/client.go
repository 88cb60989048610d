package logsapi

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
)

// API defines the four operations exview needs from the log service.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListInstances(ctx context.Context) ([]string, error)
	ListExtractedDates(ctx context.Context, instanceID string) ([]string, error)
	RequestExtraction(ctx context.Context, instanceID string) (ExtractResult, error)
	ListExceptions(ctx context.Context, instanceID, date string) ([]Exception, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the log extraction HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBase is where the log service listens unless configured otherwise.
	DefaultBase      = "http://localhost:4000"
	defaultUserAgent = "exview/dev"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the service rooted at base.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListInstances retrieves the running server instances in service order.
func (c *Client) ListInstances(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, c.endpoint("instances"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListExtractedDates retrieves the YYYYMMDD dates already extracted for an instance.
func (c *Client) ListExtractedDates(ctx context.Context, instanceID string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(instanceID) == "" {
		return nil, fmt.Errorf("instance id required")
	}
	if instanceID == "." || instanceID == ".." {
		return nil, fmt.Errorf("instance id %q cannot be used in a path", instanceID)
	}
	var payload []string
	rel := c.endpoint("extracted-dates", instanceID)
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// RequestExtraction asks the service to extract today's log for an instance.
func (c *Client) RequestExtraction(ctx context.Context, instanceID string) (ExtractResult, error) {
	if c == nil {
		return ExtractResult{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(instanceID) == "" {
		return ExtractResult{}, fmt.Errorf("instance id required")
	}
	var payload ExtractResult
	body := extractRequest{InstanceID: instanceID}
	if err := c.do(ctx, http.MethodPost, c.endpoint("extract"), body, &payload); err != nil {
		return ExtractResult{}, err
	}
	return payload, nil
}

// ListExceptions retrieves the exceptions extracted for an instance on a date.
func (c *Client) ListExceptions(ctx context.Context, instanceID, date string) ([]Exception, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(instanceID) == "" {
		return nil, fmt.Errorf("instance id required")
	}
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("date required")
	}
	values := url.Values{}
	values.Set("instanceId", instanceID)
	values.Set("date", date)
	rel := c.endpoint("exceptions-date")
	rel.RawQuery = values.Encode()
	var payload []Exception
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// endpoint appends raw segments under <base>/logs. Each segment is escaped
// on its own and the result is never path-cleaned.
func (c *Client) endpoint(segments ...string) *url.URL {
	plain := strings.TrimSuffix(c.baseURL.Path, "/") + "/logs"
	raw := plain
	for _, seg := range segments {
		plain += "/" + seg
		raw += "/" + url.PathEscape(seg)
	}
	u := *c.baseURL
	u.Path = plain
	u.RawPath = raw
	return &u
}

func (c *Client) do(ctx context.Context, method string, reqURL *url.URL, body, dest any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: reqURL.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
