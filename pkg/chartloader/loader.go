package chartloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	internalFetcher "github.com/goliatone/go-chartload/internal/chart/fetcher"
	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/notify"
	"github.com/goliatone/go-chartload/pkg/render"
	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
)

// Option customises the loader configuration.
type Option func(*ChartLoader)

// WithFetcher injects a custom fetcher.
func WithFetcher(fetcher chart.Fetcher) Option {
	return func(l *ChartLoader) {
		l.fetcher = fetcher
	}
}

// WithFetcherOptions configures the built-in HTTP fetcher. Ignored when
// WithFetcher is also supplied.
func WithFetcherOptions(options ...chart.FetcherOption) Option {
	return func(l *ChartLoader) {
		l.fetcherOptions = append(l.fetcherOptions, options...)
	}
}

// WithRenderer sets the renderer successful payloads are handed to.
func WithRenderer(renderer render.Renderer) Option {
	return func(l *ChartLoader) {
		l.renderer = renderer
	}
}

// WithNotifier sets where failure messages go.
func WithNotifier(notifier notify.Notifier) Option {
	return func(l *ChartLoader) {
		l.notifier = notifier
	}
}

// WithMessages overrides the failure texts. Empty fields keep the defaults.
func WithMessages(messages notify.Messages) Option {
	return func(l *ChartLoader) {
		l.messages = messages
	}
}

// WithLogger sets the structured logger. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *ChartLoader) {
		l.logger = logger
	}
}

// ChartLoader performs chart loads. It holds no per-load state and is safe for
// concurrent use.
type ChartLoader struct {
	fetcher        chart.Fetcher
	fetcherOptions []chart.FetcherOption
	renderer       render.Renderer
	notifier       notify.Notifier
	messages       notify.Messages
	logger         *slog.Logger
	initialiseErr  error
}

// New constructs a ChartLoader. Missing collaborators fall back to the HTTP
// fetcher, the CanvasJS renderer and a blocking terminal alert.
func New(options ...Option) *ChartLoader {
	l := &ChartLoader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	l.applyDefaults()
	return l
}

func (l *ChartLoader) applyDefaults() {
	if l.fetcher == nil {
		l.fetcher = internalFetcher.New(chart.NewFetcherOptions(l.fetcherOptions...))
	}
	if l.renderer == nil {
		renderer, err := canvasjs.New()
		if err != nil {
			l.initialiseErr = fmt.Errorf("chartloader: default renderer: %w", err)
		} else {
			l.renderer = renderer
		}
	}
	if l.notifier == nil {
		l.notifier = notify.NewAlert()
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l.messages = l.messages.WithDefaults()
}

// Show dispatches the load and returns immediately. The channel receives
// exactly one Result and is then closed; callers that do not care about the
// outcome may ignore it.
func (l *ChartLoader) Show(ctx context.Context, req chart.Request) <-chan chart.Result {
	out := make(chan chart.Result, 1)
	go func() {
		defer close(out)
		out <- l.Load(ctx, req)
	}()
	return out
}

// Load fetches, decodes and renders the chart described by req, blocking until
// the outcome is known.
//
// A payload whose "successful" field is falsy is neither rendered nor
// reported to the user; the result carries chart.KindUnsuccessful. Transport
// failures (network errors, non-200 responses, empty bodies) notify the
// Failure message; malformed payloads, bad requests, renderer errors and
// panics notify the Exception message. Exactly one notification is sent per
// failed load.
func (l *ChartLoader) Load(ctx context.Context, req chart.Request) (result chart.Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	ctx = chart.WithRequestID(ctx, requestID)
	logger := l.logger.With("url", req.URL, "request_id", requestID)

	defer func() {
		if recovered := recover(); recovered != nil {
			err := chart.NewError(chart.KindPanic, fmt.Errorf("%v", recovered))
			result = l.fail(ctx, logger, chart.Result{Payload: result.Payload}, err)
		}
	}()

	if l.initialiseErr != nil {
		return l.fail(ctx, logger, chart.Result{}, chart.NewError(chart.KindRender, l.initialiseErr))
	}

	logger.Debug("chartloader: load start", "params", req.Params, "container", req.Container.ID)

	payload, err := l.fetcher.Fetch(ctx, req)
	if err != nil {
		return l.fail(ctx, logger, chart.Result{}, err)
	}
	result.Payload = payload

	if !payload.Successful() {
		logger.Info("chartloader: payload not successful")
		return chart.Result{Payload: payload, Err: chart.NewError(chart.KindUnsuccessful, nil)}
	}

	if err := l.renderer.Render(ctx, req.Container, payload); err != nil {
		return l.fail(ctx, logger, chart.Result{Payload: payload}, chart.NewError(chart.KindRender, err))
	}

	logger.Info("chartloader: rendered", "renderer", l.renderer.Name(), "container", req.Container.ID)
	return chart.Result{Payload: payload, Rendered: true}
}

func (l *ChartLoader) fail(ctx context.Context, logger *slog.Logger, result chart.Result, err error) chart.Result {
	kind := chart.KindOf(err)
	if kind == "" {
		kind = chart.KindTransport
		err = chart.NewError(kind, err)
	}
	result.Err = err
	result.Rendered = false

	attrs := []any{"kind", string(kind), "error", err}
	var chartErr *chart.Error
	if errors.As(err, &chartErr) && chartErr.StatusCode != 0 {
		attrs = append(attrs, "status", chartErr.StatusCode)
	}
	logger.Error("chartloader: load failed", attrs...)

	message := l.messages.Exception
	if kind.Failure() {
		message = l.messages.Failure
	}
	l.notify(ctx, logger, message)
	return result
}

// notify delivers message once. A panicking notifier is logged and contained
// so it never re-enters the load's own recovery.
func (l *ChartLoader) notify(ctx context.Context, logger *slog.Logger, message string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("chartloader: notifier panicked", "panic", fmt.Sprint(recovered))
		}
	}()
	// The notification must not be skipped because the load context ended.
	if err := l.notifier.Notify(context.WithoutCancel(ctx), message); err != nil {
		logger.Warn("chartloader: notify failed", "error", err)
	}
}
