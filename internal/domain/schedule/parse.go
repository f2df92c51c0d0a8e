package schedule

import (
	"fmt"
	"strings"
	"time"
)

// wallLayouts are wall-clock forms interpreted in the schedule's zone.
var wallLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}

// ParseTime accepts an RFC3339 instant or a wall-clock time in the named
// zone (UTC when empty). An empty value yields the zero time.
func ParseTime(raw, tz string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	loc := time.UTC
	if tz = strings.TrimSpace(tz); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, ErrInvalidTimeZone
		}
		loc = parsed
	}
	for _, layout := range wallLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a timestamp", ErrInvalidInput, raw)
}
