package chart

import (
	"encoding/json"
	"math"
	"strconv"
)

// SuccessfulKey is the only payload field the loader interprets.
const SuccessfulKey = "successful"

// Payload is a decoded chart definition. Apart from "successful" its contents
// are opaque configuration forwarded to the renderer as-is.
type Payload map[string]any

// Successful reports whether the "successful" field is truthy under JavaScript
// rules: false, 0, NaN, "" and null (or a missing field) are falsy, everything
// else is truthy.
func (p Payload) Successful() bool {
	if p == nil {
		return false
	}
	return truthy(p[SuccessfulKey])
}

// Text returns the string stored at key, or "" when absent or not a string.
func (p Payload) Text(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Object returns the nested object stored at key.
func (p Payload) Object(key string) (Payload, bool) {
	switch v := p[key].(type) {
	case map[string]any:
		return Payload(v), true
	case Payload:
		return v, true
	default:
		return nil, false
	}
}

// Title returns the chart title text, accepting both the CanvasJS object form
// ({"title": {"text": "..."}}) and a bare string.
func (p Payload) Title() string {
	if obj, ok := p.Object("title"); ok {
		return obj.Text("text")
	}
	return p.Text("title")
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return v.String() != ""
		}
		return f != 0 && !math.IsNaN(f)
	case int:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
