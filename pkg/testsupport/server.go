package testsupport

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ChartServer is an httptest server answering every request with a fixed
// status and body while recording the requests it saw.
type ChartServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewChartServer starts a server replying with status and body. The server is
// closed when the test finishes.
func NewChartServer(t *testing.T, status int, body string) *ChartServer {
	t.Helper()

	cs := &ChartServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.requests = append(cs.requests, r.Clone(r.Context()))
		cs.mu.Unlock()

		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(cs.Close)
	return cs
}

// Requests returns the requests received so far.
func (cs *ChartServer) Requests() []*http.Request {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]*http.Request(nil), cs.requests...)
}
