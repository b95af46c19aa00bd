package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/chartloader"
	"github.com/goliatone/go-chartload/pkg/config"
	"github.com/goliatone/go-chartload/pkg/notify"
	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type indexResponse struct {
	Data []indexEntry `json:"data"`
}

type indexEntry struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path"`
}

// NewHandler builds the preview handler. GET {route} lists the configured
// charts as JSON; GET {route}/{name} loads the named chart and responds with
// the rendered page.
func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultOptions().RoutePath
	}
	route := strings.TrimRight(mountPath("", opts.RoutePath), "/")

	loader := opts.Loader
	var initErr error
	if loader == nil {
		loader, initErr = defaultLoader(opts.Config)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if initErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		path := r.URL.Path
		if path != route && !strings.HasPrefix(path, route+"/") {
			http.NotFound(w, r)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		name := strings.Trim(strings.TrimPrefix(path, route), "/")
		if name == "" {
			writeIndex(w, r, opts, route)
			return
		}

		ch, ok := opts.Config.Chart(name)
		if !ok {
			http.NotFound(w, r)
			return
		}

		var buf bytes.Buffer
		result := loader.Load(r.Context(), ch.Request(chart.Container{Writer: &buf}))
		switch {
		case result.OK():
		case errors.Is(result.Err, chart.ErrUnsuccessful):
			w.WriteHeader(http.StatusNoContent)
			return
		default:
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(buf.Bytes())
	})
}

func writeIndex(w http.ResponseWriter, r *http.Request, opts Options, route string) {
	entries := []indexEntry{}
	for _, name := range opts.Config.Names() {
		ch, _ := opts.Config.Chart(name)
		entries = append(entries, indexEntry{Name: ch.Name, Title: ch.Title, Path: route + "/" + ch.Name})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(indexResponse{Data: entries})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

// defaultLoader renders full CanvasJS pages styled by the configured theme.
func defaultLoader(cfg *config.Config) (*chartloader.ChartLoader, error) {
	rendererOpts := []canvasjs.Option{canvasjs.WithTheme(cfg.ThemeConfig())}
	fetcherOpts := []chart.FetcherOption{}
	if cfg != nil {
		if cfg.ScriptURL != "" {
			rendererOpts = append(rendererOpts, canvasjs.WithScriptURL(cfg.ScriptURL))
		}
		fetcherOpts = append(fetcherOpts, chart.WithRequestTimeout(cfg.Timeout))
	}
	renderer, err := canvasjs.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("preview: renderer: %w", err)
	}
	return chartloader.New(
		chartloader.WithRenderer(renderer),
		chartloader.WithNotifier(notify.Discard),
		chartloader.WithFetcherOptions(fetcherOpts...),
	), nil
}
