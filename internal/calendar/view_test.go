package calendar_test

import (
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/stretchr/testify/require"
)

func TestShiftMonth(t *testing.T) {
	y, m := calendar.ShiftMonth(2025, 0, -1)
	require.Equal(t, 2024, y)
	require.Equal(t, 11, m)

	y, m = calendar.ShiftMonth(2025, 11, 1)
	require.Equal(t, 2026, y)
	require.Equal(t, 0, m)

	y, m = calendar.ShiftMonth(2025, 4, 14)
	require.Equal(t, 2026, y)
	require.Equal(t, 6, m)
}

func TestBuildMonth(t *testing.T) {
	events := []calendar.CalendarEvent{
		{ID: "a", Title: "Launch", Start: time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)},
	}
	today := time.Date(2025, 4, 17, 8, 0, 0, 0, time.UTC)

	view := calendar.BuildMonth(2025, 3, events, today)
	require.Equal(t, "April 2025", view.Label)
	require.Equal(t, 2025, view.Year)
	require.Equal(t, 3, view.Month)
	require.Equal(t, calendar.MonthRef{Year: 2025, Month: 2}, view.Previous)
	require.Equal(t, calendar.MonthRef{Year: 2025, Month: 4}, view.Next)
	require.Len(t, view.Cells, calendar.GridSize)

	var todays, withEvents int
	for _, c := range view.Cells {
		if c.IsToday {
			todays++
			require.Equal(t, 17, c.Day)
		}
		if len(c.Events) > 0 {
			withEvents++
			require.Equal(t, "Launch", c.Events[0].Title)
			require.Equal(t, 17, c.Day)
		}
		require.NotNil(t, c.Events)
	}
	require.Equal(t, 1, todays)
	require.Equal(t, 1, withEvents)
}

func TestBuildWeek(t *testing.T) {
	date := time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC) // Wednesday
	events := []calendar.CalendarEvent{
		{ID: "a", Start: time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC)},
		{ID: "b", Start: time.Date(2025, 4, 6, 9, 0, 0, 0, time.UTC)},
	}

	week := calendar.BuildWeek(date, events, date)
	require.Len(t, week.Cells, 7)
	require.Equal(t, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), week.Start)
	require.Equal(t, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), week.End)
	require.Equal(t, "Mar 30 - Apr 5, 2025", week.Label)

	require.False(t, week.Cells[0].IsCurrentMonth)
	require.True(t, week.Cells[3].IsCurrentMonth)
	require.True(t, week.Cells[3].IsToday)
	require.Len(t, week.Cells[1].Events, 1)
	require.Equal(t, "a", week.Cells[1].Events[0].ID)
	for i, c := range week.Cells {
		if i != 1 {
			require.Empty(t, c.Events)
		}
	}
}
