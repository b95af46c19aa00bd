package render

import (
	"context"

	"github.com/goliatone/go-chartload/pkg/chart"
)

// Container aliases chart.Container so renderer implementations only need to
// import this package.
type Container = chart.Container

// Renderer draws a decoded chart definition into a container. The payload is
// the full decoded object, "successful" included; renderers must treat it as
// read-only because callers may hold on to it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, container Container, config chart.Payload) error
}

// Func adapts a function into a Renderer named name.
type Func struct {
	RendererName string
	Type         string
	Fn           func(ctx context.Context, container Container, config chart.Payload) error
}

func (f Func) Name() string { return f.RendererName }

func (f Func) ContentType() string {
	if f.Type == "" {
		return "text/plain; charset=utf-8"
	}
	return f.Type
}

func (f Func) Render(ctx context.Context, container Container, config chart.Payload) error {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(ctx, container, config)
}
