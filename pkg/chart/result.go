package chart

// Result is the outcome of one chart load, delivered once the response has
// been handled.
type Result struct {
	// Payload holds the decoded chart definition when decoding succeeded,
	// including unsuccessful payloads.
	Payload Payload
	// Rendered is true when the renderer was invoked and returned nil.
	Rendered bool
	// Err is nil only for rendered results.
	Err error
}

// OK reports whether the chart was rendered.
func (r Result) OK() bool {
	return r.Rendered && r.Err == nil
}

// Kind classifies the failure, or "" for rendered results.
func (r Result) Kind() Kind {
	if r.Err == nil {
		return ""
	}
	return KindOf(r.Err)
}
