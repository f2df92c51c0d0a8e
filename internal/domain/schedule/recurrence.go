package schedule

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// ParseRecurrence parses an RRULE anchored at start. A leading "RRULE:" is accepted.
func ParseRecurrence(rule string, start time.Time) (*rrule.RRule, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, err
	}
	r.DTStart(start)
	return r, nil
}

// NextOccurrence returns the first recurrence strictly after t. The rule is
// expanded from the series start in the schedule's own zone, so COUNT and
// UNTIL bound the whole series and wall-clock times survive DST changes.
func (s *Schedule) NextOccurrence(t time.Time) (time.Time, bool) {
	if !s.Recurring() {
		return time.Time{}, false
	}
	r, err := ParseRecurrence(s.Recurrence, s.Anchor())
	if err != nil {
		return time.Time{}, false
	}
	next := r.After(t, false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next.UTC(), true
}
