package chart

import (
	"fmt"
	"time"
)

// Date is a calendar date revived from a `date-<year>-<month>-<day>` string.
// The three fields hold the captured groups verbatim; Month follows whatever
// convention the encoder used (zero based for the CanvasJS services).
type Date struct {
	Year  int
	Month int
	Day   int
}

// String re-encodes the date in its wire form.
func (d Date) String() string {
	return fmt.Sprintf("date-%d-%d-%d", d.Year, d.Month, d.Day)
}

// Time converts the date into a time.Time at midnight in loc, reading Month as
// zero based. Out of range months and days roll over into the next unit, so
// date-2020-12-1 yields 2021-01-01. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.January+time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// MarshalJSON writes the wire form so re-encoded payloads survive another
// decode pass unchanged.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// MarshalYAML implements yaml.Marshaler using the wire form.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}
