package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/render"
)

// RenderCall captures one Render invocation.
type RenderCall struct {
	ContainerID string
	Payload     chart.Payload
}

// RecordingRenderer records invocations instead of drawing anything. Err, when
// set, is returned from every Render call.
type RecordingRenderer struct {
	mu    sync.Mutex
	calls []RenderCall
	Err   error
}

var _ render.Renderer = (*RecordingRenderer)(nil)

func (r *RecordingRenderer) Name() string        { return "recording" }
func (r *RecordingRenderer) ContentType() string { return "text/plain" }

func (r *RecordingRenderer) Render(_ context.Context, container render.Container, payload chart.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, RenderCall{ContainerID: container.ID, Payload: payload})
	return r.Err
}

// Calls returns a copy of the recorded invocations.
func (r *RecordingRenderer) Calls() []RenderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RenderCall(nil), r.calls...)
}

// RecordingNotifier records notification messages.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *RecordingNotifier) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

// Messages returns a copy of the recorded messages.
func (n *RecordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
