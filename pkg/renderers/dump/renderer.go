// Package dump renders decoded chart definitions as YAML, which is handy for
// inspecting what a chart endpoint returns from a terminal.
package dump

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/render"
)

// Name is the registry name of this renderer.
const Name = "yaml"

type Option func(*Renderer)

// WithIndent sets the YAML indentation width.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces > 0 {
			r.indent = spaces
		}
	}
}

// WithoutHeader drops the "# container:" comment line.
func WithoutHeader() Option {
	return func(r *Renderer) {
		r.header = false
	}
}

// Renderer writes the payload as a YAML document. Dates keep their wire form.
type Renderer struct {
	indent int
	header bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{indent: 2, header: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/yaml" }

func (r *Renderer) Render(_ context.Context, container render.Container, payload chart.Payload) error {
	if err := container.Validate(); err != nil {
		return err
	}

	if r.header {
		if _, err := fmt.Fprintf(container.Writer, "# container: %s\n", container.ID); err != nil {
			return fmt.Errorf("dump renderer: write header: %w", err)
		}
	}

	enc := yaml.NewEncoder(container.Writer)
	enc.SetIndent(r.indent)
	if err := enc.Encode(map[string]any(payload)); err != nil {
		return fmt.Errorf("dump renderer: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dump renderer: flush: %w", err)
	}
	return nil
}
