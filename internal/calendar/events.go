package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/cadence/internal/domain/schedule"
)

// MaxOccurrences caps how many instances a single recurring schedule expands to.
const MaxOccurrences = 500

// EventsFromSchedules projects schedules into calendar events whose start is
// expressed in loc. Titles maps content IDs to content titles; a missing
// title falls back to a label naming the target platforms.
func EventsFromSchedules(schedules []schedule.Schedule, titles map[string]string, loc *time.Location) []CalendarEvent {
	if loc == nil {
		loc = time.UTC
	}
	events := make([]CalendarEvent, 0, len(schedules))
	for _, s := range schedules {
		title, ok := titles[s.ContentID]
		if !ok || title == "" {
			title = "Content for " + strings.Join(s.PlatformIDs, ", ")
		}
		platforms := make([]string, len(s.PlatformIDs))
		copy(platforms, s.PlatformIDs)
		events = append(events, CalendarEvent{
			ID:        s.ID,
			Title:     title,
			Start:     s.ScheduledFor.In(loc),
			Platforms: platforms,
			ContentID: s.ContentID,
		})
	}
	return events
}

// ExpandRecurring returns the schedules that occur within [from, to]. One-off
// schedules outside the range are dropped. Each occurrence of a recurring
// schedule, past or upcoming, becomes its own copy with ID
// "<id>@<RFC3339 start>".
func ExpandRecurring(schedules []schedule.Schedule, from, to time.Time) []schedule.Schedule {
	out := make([]schedule.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if !s.Recurring() {
			if !s.ScheduledFor.Before(from) && !s.ScheduledFor.After(to) {
				out = append(out, s)
			}
			continue
		}

		r, err := schedule.ParseRecurrence(s.Recurrence, s.Anchor())
		if err != nil {
			if !s.ScheduledFor.Before(from) && !s.ScheduledFor.After(to) {
				out = append(out, s)
			}
			continue
		}

		occurrences := r.Between(from, to, true)
		if len(occurrences) > MaxOccurrences {
			occurrences = occurrences[:MaxOccurrences]
		}
		for _, at := range occurrences {
			occ := s
			occ.ScheduledFor = at.UTC()
			occ.ID = fmt.Sprintf("%s@%s", s.ID, occ.ScheduledFor.Format(time.RFC3339))
			out = append(out, occ)
		}
	}
	return out
}
