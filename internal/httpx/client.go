// Package httpx provides the per-origin HTTP adapter used by the scraping
// layer. One Client is bound to one upstream origin (docs.rs or crates.io)
// and applies that origin's fixed header set to every request.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/singleflight"
)

// BodyKind classifies a response body as structured or raw.
type BodyKind string

const (
	KindJSON BodyKind = "json"
	KindText BodyKind = "text"
)

var (
	// ErrTimeout indicates the request was aborted by the per-request deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrTransport indicates a network-level failure before any response.
	ErrTransport = errors.New("transport failure")

	// ErrShape indicates the response body did not have the expected kind.
	ErrShape = errors.New("unexpected response shape")
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d for %s", e.Code, e.URL)
}

// Response is the normalized outcome of a single request.
type Response struct {
	Body        []byte
	Status      int
	Header      http.Header
	ContentType string
	Kind        BodyKind
}

// JSON decodes the body into v. Fails with ErrShape when the upstream did
// not return structured data.
func (r *Response) JSON(v any) error {
	if r.Kind != KindJSON {
		return fmt.Errorf("%w: expected json, got %s", ErrShape, r.ContentType)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding json body: %w", err)
	}
	return nil
}

// Client issues requests against a single fixed origin. Identical concurrent
// GETs are coalesced into one upstream request; nothing is retained once the
// in-flight call completes.
type Client struct {
	base    *url.URL
	headers map[string]string
	http    *http.Client
	group   singleflight.Group
}

// New creates a Client for the given origin. Headers are applied to every
// request made through this client.
func New(baseURL string, headers map[string]string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	return &Client{
		base:    base,
		headers: headers,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// URL joins a relative path and query parameters against the client's origin.
// Query values that are empty are omitted.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if query != nil {
		filtered := url.Values{}
		for k, vs := range query {
			for _, v := range vs {
				if v != "" {
					filtered.Add(k, v)
				}
			}
		}
		u.RawQuery = filtered.Encode()
	}
	return u.String()
}

// Get performs an HTTP GET. Concurrent calls for the same URL share one
// upstream request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	fullURL := c.URL(path, query)
	v, err, _ := c.group.Do(fullURL, func() (any, error) {
		return c.do(ctx, http.MethodGet, fullURL, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

// Post performs an HTTP POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, query, body)
}

// Put performs an HTTP PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, query, body)
}

// Delete performs an HTTP DELETE.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.send(ctx, http.MethodDelete, path, query, nil)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, c.URL(path, query), reader)
}

func (c *Client) do(ctx context.Context, method, fullURL string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Encoding", "zstd")

	slog.Debug("http request", "method", method, "url", fullURL)

	resp, err := c.http.Do(req)
	if err != nil {
		wrapped := classifyTransportError(err)
		slog.Error("http request failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("requesting %s: %w", fullURL, wrapped)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		slog.Error("reading response failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("reading response from %s: %w", fullURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("http status error", "url", fullURL, "status", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, URL: fullURL}
	}

	contentType := resp.Header.Get("Content-Type")
	slog.Debug("http response", "url", fullURL, "status", resp.StatusCode, "content_type", contentType, "bytes", len(data))

	return &Response{
		Body:        data,
		Status:      resp.StatusCode,
		Header:      resp.Header,
		ContentType: contentType,
		Kind:        classifyContentType(contentType),
	}, nil
}

// readBody drains the response, decoding zstd content transparently.
func readBody(resp *http.Response) ([]byte, error) {
	if strings.Contains(resp.Header.Get("Content-Encoding"), "zstd") {
		decoder, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		return io.ReadAll(decoder)
	}
	return io.ReadAll(resp.Body)
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrTransport
}

func classifyContentType(contentType string) BodyKind {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "json") {
		return KindJSON
	}
	return KindText
}
