package mutation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTransport matches every failed write: network errors and non-2xx replies alike.
var ErrTransport = errors.New("transport failure")

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return ErrTransport }

// Response is the raw reply of a successful write.
type Response struct {
	StatusCode  int
	Header      http.Header
	Body        []byte
	RequestBody []byte // JSON actually sent
}

// Decode unmarshals the response body into out.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Poster sends one JSON write.
type Poster interface {
	Post(ctx context.Context, body any) (*Response, error)
}

// Client posts JSON to a single endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient creates a client; a zero timeout means no deadline.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
		Timeout:    timeout,
	}
}

// Post is safe for concurrent use; it never mutates c.
func (c *Client) Post(ctx context.Context, body any) (*Response, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: c.Timeout}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	sent := bytes.TrimRight(buf.Bytes(), "\n")
	sent = append([]byte(nil), sent...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        b,
		RequestBody: sent,
	}, nil
}
