package preview

import (
	"net/http"

	"github.com/goliatone/go-chartload/pkg/chartloader"
	"github.com/goliatone/go-chartload/pkg/config"
)

// GuardFunc can reject a request before any chart is loaded. Returning an
// error implementing HTTPError selects the response status.
type GuardFunc func(r *http.Request) error

// Options configures the preview handler.
type Options struct {
	RoutePath string
	Config    *config.Config
	Loader    *chartloader.ChartLoader
	Guard     GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/charts",
	}
}

// NewOptions applies fns over the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/charts"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithConfig(cfg *config.Config) OptionFn {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithLoader sets the loader used for every request. It should render HTML
// and notify nobody, since there is no user at the server's terminal.
func WithLoader(loader *chartloader.ChartLoader) OptionFn {
	return func(o *Options) {
		o.Loader = loader
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}
