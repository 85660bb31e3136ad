// Package client provides a Go client for the paste.rs paste service.
//
// Basic usage:
//
//	c, err := client.New() // uses default https://paste.rs/
//	rec, err := c.Create(ctx, []byte("hello world"))
//	ref, err := c.Resolve("https://paste.rs/osx")
//	content, err := c.Fetch(ctx, ref)
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the default paste.rs service URL.
const DefaultBaseURL = "https://paste.rs/"

// Outcome describes how the server accepted a new paste.
type Outcome int

const (
	// OutcomeUnknown is never returned by Create.
	OutcomeUnknown Outcome = iota
	// Created means the whole content was stored.
	Created
	// PartiallyCreated means the server truncated the content but still issued an id.
	PartiallyCreated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case PartiallyCreated:
		return "partially created"
	default:
		return "unknown"
	}
}

// Record is the result of a successful Create.
type Record struct {
	Reference
	URL     string
	Outcome Outcome
}

// Client is a paste.rs API client. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	resolver   *Resolver
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the paste service.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new paste.rs client with the given options.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		// No client timeout: large uploads may legitimately be slow.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	r, err := NewResolver(c.baseURL)
	if err != nil {
		return nil, err
	}
	c.resolver = r
	c.baseURL = r.BaseURL()
	return c, nil
}

// BaseURL returns the service base URL, always ending in a slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resolve turns a URL, scheme-less URL or bare id into a Reference.
func (c *Client) Resolve(input string) (Reference, error) {
	return c.resolver.Resolve(input)
}

// URL returns the canonical URL of ref.
func (c *Client) URL(ref Reference) string {
	return c.resolver.URL(ref)
}

// Create uploads content as a new paste.
func (c *Client) Create(ctx context.Context, content []byte) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(content))
	if err != nil {
		return nil, &Error{Code: ErrInvalidURL, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var outcome Outcome
	switch status {
	case http.StatusCreated:
		outcome = Created
	case http.StatusPartialContent:
		outcome = PartiallyCreated
	default:
		return nil, remoteError(status, strings.TrimSpace(body))
	}

	ref, err := c.resolver.extract(strings.TrimSpace(body))
	if err != nil {
		return nil, err
	}

	return &Record{
		Reference: ref,
		URL:       c.URL(ref),
		Outcome:   outcome,
	}, nil
}

// Fetch retrieves the content of a paste.
func (c *Client) Fetch(ctx context.Context, ref Reference) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(ref), nil)
	if err != nil {
		return "", &Error{Code: ErrInvalidURL, Message: fmt.Sprintf("%q does not form a valid paste url", ref.ID), Err: err}
	}

	status, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", remoteError(status, strings.TrimSpace(body))
	}
	return body, nil
}

func (c *Client) do(req *http.Request) (int, string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", transportError("making request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", transportError("reading response", err)
	}
	return resp.StatusCode, string(body), nil
}
