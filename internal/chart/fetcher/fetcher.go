package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-chartload/pkg/chart"
)

// HeaderRequestID carries a per-fetch identifier so server logs can be
// correlated with client logs.
const HeaderRequestID = "X-Request-ID"

// Fetcher implements chart.Fetcher over net/http.
type Fetcher struct {
	http      *http.Client
	timeout   time.Duration
	reviver   chart.Reviver
	useNumber bool
	header    http.Header
}

// Ensure the implementation satisfies the public interface.
var _ chart.Fetcher = (*Fetcher)(nil)

// New constructs a Fetcher from pre-resolved options.
func New(options chart.FetcherOptions) *Fetcher {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	reviver := options.Reviver
	if reviver == nil {
		reviver = chart.ReviveDate
	}

	return &Fetcher{
		http:      httpClient,
		timeout:   timeout,
		reviver:   reviver,
		useNumber: options.UseNumber,
		header:    options.Header.Clone(),
	}
}

// Fetch issues the GET described by req and decodes a 200 response body.
func (f *Fetcher) Fetch(ctx context.Context, req chart.Request) (chart.Payload, error) {
	data, err := f.get(ctx, req)
	if err != nil {
		return nil, err
	}

	var decodeOpts []chart.DecodeOption
	if f.useNumber {
		decodeOpts = append(decodeOpts, chart.WithUseNumber())
	}
	payload, err := chart.DecodePayload(data, f.reviver, decodeOpts...)
	if err != nil {
		return nil, chart.NewError(chart.KindDecode, err)
	}
	return payload, nil
}

func (f *Fetcher) get(ctx context.Context, req chart.Request) ([]byte, error) {
	if ctx == nil {
		return nil, chart.NewError(chart.KindRequest, errors.New("fetcher: context is required"))
	}
	target, err := req.Target()
	if err != nil {
		return nil, chart.NewError(chart.KindRequest, err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if f.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, chart.NewError(chart.KindRequest, err)
	}
	for key, values := range f.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Content-Type", chart.ContentType)
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	if id := chart.RequestIDFrom(ctx); id != "" {
		httpReq.Header.Set(HeaderRequestID, id)
	} else if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}

	resp, err := f.http.Do(httpReq)
	if err != nil {
		return nil, chart.NewError(chart.KindTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, chart.StatusError(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, chart.NewError(chart.KindTransport, fmt.Errorf("fetcher: read body: %w", err))
	}
	if len(data) == 0 {
		return nil, chart.NewError(chart.KindEmptyBody, nil)
	}
	return data, nil
}
