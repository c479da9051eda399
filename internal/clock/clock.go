// Package clock shifts schedule times of day into the destination timezone.
package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the 24-hour time-of-day format used on the schedule page
const Layout = "15:04"

// DefaultOffset is the shift from the source schedule's clock to the destination
const DefaultOffset = 3*time.Hour + 30*time.Minute

var (
	// ErrNoTime is returned for blank input; there is nothing to convert
	ErrNoTime = errors.New("no time given")
	// ErrMalformedTime is returned when the input is not HH:MM
	ErrMalformedTime = errors.New("malformed time")
)

// Converter adds a fixed offset to a time of day, wrapping around midnight.
// There is no timezone database lookup and no date tracking.
type Converter struct {
	offset time.Duration
}

// NewConverter creates a Converter with the given offset
func NewConverter(offset time.Duration) Converter {
	return Converter{offset: offset}
}

// Offset returns the configured shift
func (c Converter) Offset() time.Duration {
	return c.offset
}

// Convert parses s as HH:MM and returns it shifted by the offset
func (c Converter) Convert(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoTime
	}

	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	return t.Add(c.offset).Format(Layout), nil
}
