package calendar_test

import (
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/stretchr/testify/require"
)

func TestEventsFromSchedules(t *testing.T) {
	at := time.Date(2025, 4, 17, 23, 30, 0, 0, time.UTC)
	scheds := []schedule.Schedule{
		{ID: "s1", ContentID: "c1", ScheduledFor: at, PlatformIDs: []string{"p1"}},
		{ID: "s2", ContentID: "c2", ScheduledFor: at, PlatformIDs: []string{"p1", "p2"}},
	}
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	events := calendar.EventsFromSchedules(scheds, map[string]string{"c1": "Spring launch"}, berlin)
	require.Len(t, events, 2)
	require.Equal(t, "Spring launch", events[0].Title)
	require.Equal(t, "Content for p1, p2", events[1].Title)
	require.Equal(t, "c2", events[1].ContentID)
	require.True(t, events[0].Start.Equal(at))

	// 23:30 UTC is already the 18th in Berlin.
	require.Empty(t, calendar.EventsForDay(events, 17, 3, 2025))
	require.Len(t, calendar.EventsForDay(events, 18, 3, 2025), 2)
}

func TestEventsFromSchedules_NilLocationIsUTC(t *testing.T) {
	at := time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)
	events := calendar.EventsFromSchedules([]schedule.Schedule{{ID: "s1", ScheduledFor: at}}, nil, nil)
	require.Equal(t, time.UTC, events[0].Start.Location())
}

func TestExpandRecurring(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	scheds := []schedule.Schedule{
		{ID: "once", ScheduledFor: time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC), TimeZone: "UTC"},
		{ID: "outside", ScheduledFor: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC), TimeZone: "UTC"},
		{
			ID:           "weekly",
			ScheduledFor: time.Date(2025, 3, 24, 9, 0, 0, 0, time.UTC),
			TimeZone:     "UTC",
			Recurrence:   "FREQ=WEEKLY;BYDAY=MO",
		},
	}

	got := calendar.ExpandRecurring(scheds, from, to)
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []string{
		"once",
		"weekly@2025-04-07T09:00:00Z",
		"weekly@2025-04-14T09:00:00Z",
		"weekly@2025-04-21T09:00:00Z",
		"weekly@2025-04-28T09:00:00Z",
	}, ids)
	require.Equal(t, time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC), got[1].ScheduledFor)
}

func TestExpandRecurring_KeepsPostedOccurrences(t *testing.T) {
	first := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	// two occurrences posted; the cursor sits on the last one
	scheds := []schedule.Schedule{{
		ID:           "tips",
		ScheduledFor: first.AddDate(0, 0, 2),
		SeriesStart:  first,
		TimeZone:     "UTC",
		Recurrence:   "FREQ=DAILY;COUNT=3",
	}}

	got := calendar.ExpandRecurring(scheds,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC))
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []string{
		"tips@2025-04-01T09:00:00Z",
		"tips@2025-04-02T09:00:00Z",
		"tips@2025-04-03T09:00:00Z",
	}, ids)
}

func TestExpandRecurring_Capped(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	scheds := []schedule.Schedule{{
		ID:           "hourly",
		ScheduledFor: from,
		TimeZone:     "UTC",
		Recurrence:   "FREQ=HOURLY",
	}}
	require.Len(t, calendar.ExpandRecurring(scheds, from, to), calendar.MaxOccurrences)
}
