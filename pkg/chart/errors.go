package chart

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a chart load did not render.
type Kind string

const (
	// KindRequest means the request could not be built (missing or malformed URL).
	KindRequest Kind = "request"
	// KindTransport covers network failures, timeouts and cancellation.
	KindTransport Kind = "transport"
	// KindStatus means the server answered with anything other than 200.
	KindStatus Kind = "status"
	// KindEmptyBody means a 200 response carried no body.
	KindEmptyBody Kind = "empty_body"
	// KindDecode means the body was not a JSON object.
	KindDecode Kind = "decode"
	// KindUnsuccessful means a well-formed payload had a falsy "successful".
	KindUnsuccessful Kind = "unsuccessful"
	// KindRender means the renderer rejected the payload or container.
	KindRender Kind = "render"
	// KindPanic means a collaborator panicked while the load was in flight.
	KindPanic Kind = "panic"
)

var (
	ErrRequest      = errors.New("chart: invalid request")
	ErrTransport    = errors.New("chart: transport failure")
	ErrStatus       = errors.New("chart: unexpected status")
	ErrEmptyBody    = errors.New("chart: empty response body")
	ErrDecode       = errors.New("chart: malformed payload")
	ErrUnsuccessful = errors.New("chart: payload not successful")
	ErrRender       = errors.New("chart: render failed")
	ErrPanic        = errors.New("chart: panic during load")
)

var kindSentinels = map[Kind]error{
	KindRequest:      ErrRequest,
	KindTransport:    ErrTransport,
	KindStatus:       ErrStatus,
	KindEmptyBody:    ErrEmptyBody,
	KindDecode:       ErrDecode,
	KindUnsuccessful: ErrUnsuccessful,
	KindRender:       ErrRender,
	KindPanic:        ErrPanic,
}

// Error is the structured failure attached to a Result.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

// NewError wraps err with kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// StatusError builds a KindStatus error for the given response code.
func StatusError(code int) *Error {
	return &Error{Kind: KindStatus, StatusCode: code}
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("chart: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("chart: %s: %v", e.Kind, e.Err)
	default:
		return "chart: " + string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel registered for the error kind, so callers can use
// errors.Is(err, chart.ErrStatus) without unwrapping.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// Failure reports whether the kind belongs to the transport family surfaced to
// users as a plain failure. Decode, request and render errors are exceptions;
// unsuccessful payloads are neither.
func (k Kind) Failure() bool {
	switch k {
	case KindTransport, KindStatus, KindEmptyBody:
		return true
	default:
		return false
	}
}

// KindOf extracts the Kind from err, or "" when err is not a chart Error.
func KindOf(err error) Kind {
	var chartErr *Error
	if errors.As(err, &chartErr) && chartErr != nil {
		return chartErr.Kind
	}
	return ""
}
