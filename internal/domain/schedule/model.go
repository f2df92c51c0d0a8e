package schedule

import "time"

// Status represents the publication state of a schedule
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
	StatusFailed    Status = "failed"
)

// Schedule binds a content item to a publish instant and target platforms
type Schedule struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	ContentID    string    `json:"contentId"`
	ScheduledFor time.Time `json:"scheduledFor"` // next due instant
	SeriesStart  time.Time `json:"seriesStart"`  // first occurrence, fixed for recurring schedules
	TimeZone     string    `json:"timeZone"`
	Status       Status    `json:"status"`
	PlatformIDs  []string  `json:"platformIds"`
	Recurrence   string    `json:"recurrence,omitempty"` // RRULE, empty for one-off
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Recurring reports whether the schedule repeats.
func (s *Schedule) Recurring() bool {
	return s.Recurrence != ""
}

// Start returns the instant the schedule was anchored at. Recurring rules
// expand from here, never from the advancing ScheduledFor.
func (s *Schedule) Start() time.Time {
	if s.SeriesStart.IsZero() {
		return s.ScheduledFor
	}
	return s.SeriesStart
}

// Anchor returns Start in the schedule's own time zone.
func (s *Schedule) Anchor() time.Time {
	return s.in(s.Start())
}

// Local returns the scheduled instant in the schedule's own time zone.
func (s *Schedule) Local() time.Time {
	return s.in(s.ScheduledFor)
}

func (s *Schedule) in(t time.Time) time.Time {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return t
	}
	return t.In(loc)
}
