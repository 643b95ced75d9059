package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// DefaultTimeout bounds a single request, including reading the body.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "conception-songs"

// StatusError is returned when the server answers with a non-2xx status.
//
// Callers can inspect the code with errors.As:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.Code == 403 {
//	    fmt.Println("check your API key")
//	}
type StatusError struct {
	Code   int
	Status string
	URL    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client wraps HTTP operations for the chart API.
//
// Client provides:
//   - Configured User-Agent header
//   - Accept-Encoding: gzip negotiation with transparent decompression
//   - Timeout handling
//   - Non-2xx statuses surfaced as *StatusError
//
// The chart API only answers with JSON when the request advertises gzip
// support, so the header is always set explicitly. Setting it by hand turns
// off net/http's built-in decompression, which is why Client decodes gzip
// bodies itself.
//
// Example usage:
//
//	client := NewClient(30*time.Second, "")
//	body, err := client.Get(ctx, "http://api.example.com/list?format=json")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// A zero timeout selects DefaultTimeout; an empty userAgent selects
// DefaultUserAgent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Get performs a GET request and returns the decoded response body.
//
// Returns an error if:
//   - The request cannot be built or sent
//   - The response status is not 2xx (*StatusError)
//   - The body is gzip-encoded but corrupt
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, URL: url}
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding gzip body: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}
