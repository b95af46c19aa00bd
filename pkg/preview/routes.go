package preview

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the route prefix the handler serves under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes mounts the preview handler under basePath on mux, covering
// both the index and every chart below it. It returns the mount path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("preview: missing mux")
	}
	opts := NewOptions(fns...)
	opts.RoutePath = mountPath(basePath, opts.RoutePath)
	handler := HandlerWithOptions(opts)

	mux.Handle(opts.RoutePath, handler)
	if prefix := strings.TrimRight(opts.RoutePath, "/") + "/"; prefix != opts.RoutePath {
		mux.Handle(prefix, handler)
	}
	return opts.RoutePath, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
