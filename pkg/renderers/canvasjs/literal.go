package canvasjs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-chartload/pkg/chart"
)

// writeLiteral serialises value as a JavaScript expression. It matches JSON
// except that chart.Date values become `new Date(year, month, day)`, the form
// CanvasJS expects for date axes. Object keys are sorted for stable output and
// strings use encoding/json escaping, so the result is safe inside <script>.
func writeLiteral(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case chart.Date:
		fmt.Fprintf(buf, "new Date(%d, %d, %d)", v.Year, v.Month, v.Day)
	case *chart.Date:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		return writeLiteral(buf, *v)
	case chart.Payload:
		return writeObject(buf, v)
	case map[string]any:
		return writeObject(buf, v)
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeLiteral(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case json.Number:
		if _, err := strconv.ParseFloat(v.String(), 64); err != nil {
			return fmt.Errorf("canvasjs: invalid number %q", v.String())
		}
		buf.WriteString(v.String())
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("canvasjs: encode %T: %w", v, err)
		}
		buf.Write(encoded)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		if err := writeLiteral(buf, obj[key]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// Literal returns the JavaScript expression for config.
func Literal(config chart.Payload) (string, error) {
	var buf bytes.Buffer
	if err := writeLiteral(&buf, config); err != nil {
		return "", err
	}
	return buf.String(), nil
}
