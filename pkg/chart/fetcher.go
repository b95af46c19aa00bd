package chart

import (
	"context"
	"net/http"
	"time"
)

// Fetcher retrieves and decodes a chart definition. Implementations return
// *Error values so callers can classify failures by Kind; the date-revival rule
// is applied during decoding.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Payload, error)
}

// FetcherOptions configures how a Fetcher talks to chart endpoints.
type FetcherOptions struct {
	// HTTPClient overrides the client used for requests; nil means a fresh
	// client honouring RequestTimeout.
	HTTPClient *http.Client

	// RequestTimeout caps each fetch. Zero leaves the request bounded only by
	// the caller's context.
	RequestTimeout time.Duration

	// Reviver replaces ReviveDate. Keep ReviveDate unless the server encodes
	// dates differently.
	Reviver Reviver

	// UseNumber keeps numbers as json.Number.
	UseNumber bool

	// Header holds extra headers sent with every request. The Content-Type
	// header always stays ContentType.
	Header http.Header
}

// FetcherOption mutates FetcherOptions prior to construction.
type FetcherOption func(*FetcherOptions)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout bounds each fetch.
func WithRequestTimeout(timeout time.Duration) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithReviver swaps the date-revival rule.
func WithReviver(reviver Reviver) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.Reviver = reviver
	}
}

// WithNumbers keeps JSON numbers as json.Number in decoded payloads.
func WithNumbers() FetcherOption {
	return func(opts *FetcherOptions) {
		opts.UseNumber = true
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) FetcherOption {
	return func(opts *FetcherOptions) {
		if opts.Header == nil {
			opts.Header = make(http.Header)
		}
		opts.Header.Add(key, value)
	}
}

// NewFetcherOptions applies options and fills defaults.
func NewFetcherOptions(options ...FetcherOption) FetcherOptions {
	cfg := FetcherOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Reviver == nil {
		cfg.Reviver = ReviveDate
	}
	return cfg
}
