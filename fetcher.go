package chartload

import (
	internalFetcher "github.com/goliatone/go-chartload/internal/chart/fetcher"
	"github.com/goliatone/go-chartload/pkg/chart"
)

// NewFetcher constructs the HTTP fetcher while keeping the concrete type
// hidden from consumers.
func NewFetcher(options ...chart.FetcherOption) chart.Fetcher {
	cfg := chart.NewFetcherOptions(options...)
	return internalFetcher.New(cfg)
}
