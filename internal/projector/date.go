package projector

import (
	"fmt"
	"time"
)

// DateLayout is the canonical on-the-wire date format.
const DateLayout = "2006-01-02"

// ParseDate parses a record date. Plain dates are the norm; full RFC 3339
// timestamps are accepted because older clients sent them.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}
