package chartload

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/chartloader"
	"github.com/goliatone/go-chartload/pkg/render"
	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
	"github.com/goliatone/go-chartload/pkg/renderers/dump"
)

// Request aliases chart.Request for callers that only import the root package.
type Request = chart.Request

// Container aliases the render target.
type Container = chart.Container

// Payload is the decoded chart configuration.
type Payload = chart.Payload

// Result is the outcome of one chart load.
type Result = chart.Result

// NewChartLoader exposes the loader constructor from the top-level module.
func NewChartLoader(options ...chartloader.Option) *chartloader.ChartLoader {
	return chartloader.New(options...)
}

// ShowChart requests url with params, revives dates in the response and
// renders it into container when the server reports success. It returns
// immediately; the channel yields the single outcome and is then closed.
func ShowChart(ctx context.Context, url, params string, container Container, options ...chartloader.Option) <-chan Result {
	return chartloader.New(options...).Show(ctx, Request{
		URL:       url,
		Params:    params,
		Container: container,
	})
}

// LoadChart is the blocking counterpart of ShowChart.
func LoadChart(ctx context.Context, url, params string, container Container, options ...chartloader.Option) Result {
	return chartloader.New(options...).Load(ctx, Request{
		URL:       url,
		Params:    params,
		Container: container,
	})
}

// DefaultRegistry returns a registry holding the built-in renderers, with
// CanvasJS as the fallback. Options are passed to the CanvasJS renderer.
func DefaultRegistry(options ...canvasjs.Option) (*render.Registry, error) {
	page, err := canvasjs.New(options...)
	if err != nil {
		return nil, fmt.Errorf("chartload: canvasjs renderer: %w", err)
	}
	return render.NewRegistry(page, dump.New()), nil
}
