package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ContentType is the request header sent with every chart fetch.
const ContentType = "application/json;charset=UTF-8"

// Request describes a single chart load.
type Request struct {
	// URL of the chart endpoint. Required.
	URL string
	// Params is an optional pre-encoded query string appended to URL verbatim.
	Params string
	// Container is the mount point handed to the renderer. The loader does not
	// validate it; renderers report unusable containers.
	Container Container
}

// Target returns the URL the request is sent to: URL with Params appended
// after "?", or after "&" when URL already carries a query string. A fragment
// stays at the end so the query reaches the server.
func (r Request) Target() (string, error) {
	base := strings.TrimSpace(r.URL)
	if base == "" {
		return "", errors.New("chart: request url is required")
	}
	params := strings.TrimLeft(r.Params, "?&")
	if params == "" {
		return base, nil
	}

	base, fragment, hasFragment := strings.Cut(base, "#")
	switch {
	case !strings.Contains(base, "?"):
		base += "?" + params
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		base += params
	default:
		base += "&" + params
	}
	if hasFragment {
		base += "#" + fragment
	}
	return base, nil
}

// ErrInvalidContainer reports a container renderers cannot mount into.
var ErrInvalidContainer = errors.New("chart: invalid container")

// Container references the mount point a chart is rendered into: the element
// id the chart attaches to and the writer receiving the rendered output.
type Container struct {
	ID     string
	Writer io.Writer
}

// Validate reports whether the container can be rendered into.
func (c Container) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidContainer)
	}
	if c.Writer == nil {
		return fmt.Errorf("%w: writer is required", ErrInvalidContainer)
	}
	return nil
}
