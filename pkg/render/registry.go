package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned when a lookup names no registered renderer.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry stores renderers by name so callers can pick one from configuration
// or command-line flags. Names are case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates a registry holding the given renderers. It panics on
// duplicates, which only happen through wiring mistakes.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
	}
	for _, renderer := range renderers {
		r.MustRegister(renderer)
	}
	return r
}

// Register adds a renderer by its Name(). The first renderer registered
// becomes the fallback returned by Resolve("").
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	key := normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, key, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// Resolve behaves like Get but maps an empty name to the fallback renderer.
func (r *Registry) Resolve(name string) (Renderer, error) {
	if normalizeName(name) == "" {
		r.mu.RLock()
		name = r.fallback
		r.mu.RUnlock()
	}
	return r.Get(name)
}

// SetFallback picks the renderer Resolve("") returns.
func (r *Registry) SetFallback(name string) error {
	key := normalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[key]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownRenderer, key)
	}
	r.fallback = key
	return nil
}

// List returns the sorted renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[normalizeName(name)]
	return ok
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
