package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Reviver transforms a decoded value before it is stored in its parent. key is
// the object key, the decimal index for array elements, or "" for the root.
// The returned value replaces the original.
type Reviver func(key string, value any) any

var datePattern = regexp.MustCompile(`^date-(\d+)-(\d+)-(\d+)$`)

// ReviveDate turns strings shaped like date-<year>-<month>-<day> into Date
// values. Any other value, including strings whose numeric groups overflow an
// int, is returned unchanged.
func ReviveDate(_ string, value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	match := datePattern.FindStringSubmatch(s)
	if match == nil {
		return value
	}

	parts := [3]int{}
	for i := range parts {
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return value
		}
		parts[i] = n
	}
	return Date{Year: parts[0], Month: parts[1], Day: parts[2]}
}

// DecodeOption tweaks Decode behaviour.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	useNumber bool
}

// WithUseNumber keeps JSON numbers as json.Number instead of float64.
func WithUseNumber() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.useNumber = true
	}
}

// Decode parses data as a single JSON value and applies reviver to every value
// in the tree, children before parents, the same order JSON.parse uses. A nil
// reviver decodes without transformation.
func Decode(data []byte, reviver Reviver, options ...DecodeOption) (any, error) {
	cfg := decodeConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if cfg.useNumber {
		dec.UseNumber()
	}

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("chart: decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("chart: decode json: unexpected data after top-level value")
	}

	if reviver == nil {
		return root, nil
	}
	return revive("", root, reviver), nil
}

// DecodePayload decodes data with reviver and requires the root to be a JSON
// object.
func DecodePayload(data []byte, reviver Reviver, options ...DecodeOption) (Payload, error) {
	value, err := Decode(data, reviver, options...)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case map[string]any:
		return Payload(v), nil
	case Payload:
		return v, nil
	default:
		return nil, fmt.Errorf("chart: decode json: top-level value is %T, want object", value)
	}
}

func revive(key string, value any, reviver Reviver) any {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = revive(k, child, reviver)
		}
	case []any:
		for i, child := range v {
			v[i] = revive(strconv.Itoa(i), child, reviver)
		}
	}
	return reviver(key, value)
}
