package mijnhost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

const DefaultUserAgent = "mijnhost-dns/1.0"

type options struct {
	userAgent  string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*options)

// WithUserAgent overrides the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// transport holds everything shared by all calls. It is built once in New
// and only read afterwards, so it is safe for concurrent use.
type transport struct {
	baseURL string
	header  http.Header
	client  *http.Client
}

func newTransport(apiKey string, opts ...Option) (*transport, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	o := &options{
		userAgent: DefaultUserAgent,
		baseURL:   domain.DefaultBaseURL,
		timeout:   domain.DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	header.Set("API-Key", apiKey)
	header.Set("User-Agent", o.userAgent)

	return &transport{
		baseURL: strings.TrimRight(o.baseURL, "/") + "/",
		header:  header,
		client:  client,
	}, nil
}

type rawResponse struct {
	StatusCode int
	Body       []byte
}

// do performs one request. A non-2xx response becomes an *APIError; a 2xx
// body that does not decode into out is a malformed response. No retries.
func (t *transport) do(ctx context.Context, method, path string, body, out any) (*rawResponse, error) {
	op := method + " " + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, domain.WrapOp(op, fmt.Errorf("marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, bodyReader)
	if err != nil {
		return nil, domain.WrapOp(op, fmt.Errorf("build request: %w", err))
	}
	req.Header = t.header.Clone()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, domain.WrapOp(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapOp(op, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, raw)
	}

	res := &rawResponse{StatusCode: resp.StatusCode, Body: raw}
	if out == nil {
		return res, nil
	}
	if trimmed := bytes.TrimSpace(raw); bytes.Equal(trimmed, []byte("null")) {
		return nil, malformed(op, errors.New("null body"))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, malformed(op, err)
	}
	return res, nil
}
