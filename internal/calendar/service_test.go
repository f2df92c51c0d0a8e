package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/stretchr/testify/require"
)

type fakeSchedules struct {
	scheds   []schedule.Schedule
	from, to time.Time
}

func (f *fakeSchedules) ListRange(_ context.Context, _ string, from, to time.Time) ([]schedule.Schedule, error) {
	f.from, f.to = from, to
	return f.scheds, nil
}

type fakeTitles map[string]string

func (f fakeTitles) Titles(_ context.Context, _ string, ids []string) (map[string]string, error) {
	out := map[string]string{}
	for _, id := range ids {
		if title, ok := f[id]; ok {
			out[id] = title
		}
	}
	return out, nil
}

func TestService_MonthQueriesWholeGrid(t *testing.T) {
	src := &fakeSchedules{scheds: []schedule.Schedule{
		{ID: "s1", ContentID: "c1", ScheduledFor: time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC), TimeZone: "UTC", PlatformIDs: []string{"p1"}},
		{ID: "s2", ContentID: "c2", ScheduledFor: time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC), TimeZone: "UTC", PlatformIDs: []string{"p2"}},
	}}
	svc := calendar.NewService(src, fakeTitles{"c1": "Launch"})

	now := time.Date(2025, 4, 17, 8, 0, 0, 0, time.UTC)
	view, err := svc.Month(context.Background(), "user1", 2025, 3, time.UTC, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), src.from)
	require.Equal(t, time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), src.to)

	var titles []string
	for _, c := range view.Cells {
		for _, ev := range c.Events {
			titles = append(titles, ev.Title)
		}
	}
	require.Equal(t, []string{"Launch", "Content for p2"}, titles)
}

func TestService_DayUsesViewerZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	src := &fakeSchedules{scheds: []schedule.Schedule{
		{ID: "s1", ContentID: "c1", ScheduledFor: time.Date(2025, 4, 17, 20, 0, 0, 0, time.UTC), TimeZone: "UTC"},
	}}
	svc := calendar.NewService(src, fakeTitles{})

	events, err := svc.Day(context.Background(), "user1", 2025, 3, 18, tokyo)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, 18, events[0].Start.Day())
}

func TestService_WeekExpandsRecurring(t *testing.T) {
	src := &fakeSchedules{scheds: []schedule.Schedule{{
		ID: "daily", ContentID: "c1", ScheduledFor: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		TimeZone: "UTC", Recurrence: "FREQ=DAILY",
	}}}
	svc := calendar.NewService(src, fakeTitles{"c1": "Tip of the day"})

	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	week, err := svc.Week(context.Background(), "user1", date, time.UTC, date)
	require.NoError(t, err)
	for _, c := range week.Cells {
		require.Len(t, c.Events, 1)
		require.Equal(t, "Tip of the day", c.Events[0].Title)
	}
}
