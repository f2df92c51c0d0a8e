package calendar_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/cadence/internal/calendar"
	"github.com/stretchr/testify/require"
)

func currentMonthDays(cells []calendar.DayCell) int {
	n := 0
	for _, c := range cells {
		if c.IsCurrentMonth {
			n++
		}
	}
	return n
}

func TestBuildGrid_AlwaysFortyTwoCells(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			cells := calendar.BuildGrid(year, month)
			require.Len(t, cells, calendar.GridSize, "year=%d month=%d", year, month)
		}
	}
}

func TestBuildGrid_MonthLengths(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2025, 1, 28},
		{2024, 1, 29},
		{2025, 3, 30},
		{2025, 0, 31},
		{2000, 1, 29},
		{1900, 1, 28},
	}
	for _, tc := range cases {
		require.Equal(t, tc.days, currentMonthDays(calendar.BuildGrid(tc.year, tc.month)),
			"year=%d month=%d", tc.year, tc.month)
	}
}

func TestBuildGrid_SegmentsAreContiguous(t *testing.T) {
	cells := calendar.BuildGrid(2025, 3)

	// April 2025 starts on a Tuesday.
	require.Equal(t, calendar.DayCell{Day: 30, Month: 2, Year: 2025}, cells[0])
	require.Equal(t, calendar.DayCell{Day: 31, Month: 2, Year: 2025}, cells[1])
	require.Equal(t, calendar.DayCell{Day: 1, Month: 3, Year: 2025, IsCurrentMonth: true}, cells[2])
	require.Equal(t, calendar.DayCell{Day: 30, Month: 3, Year: 2025, IsCurrentMonth: true}, cells[31])
	require.Equal(t, calendar.DayCell{Day: 1, Month: 4, Year: 2025}, cells[32])
	require.Equal(t, calendar.DayCell{Day: 10, Month: 4, Year: 2025}, cells[41])

	for i := 1; i < len(cells); i++ {
		prev := time.Date(cells[i-1].Year, time.Month(cells[i-1].Month+1), cells[i-1].Day, 0, 0, 0, 0, time.UTC)
		cur := time.Date(cells[i].Year, time.Month(cells[i].Month+1), cells[i].Day, 0, 0, 0, 0, time.UTC)
		require.Equal(t, prev.AddDate(0, 0, 1), cur, "cell %d", i)
	}
}

func TestBuildGrid_StartsOnSunday(t *testing.T) {
	// June 2025 starts on a Sunday, so there is no leading filler.
	cells := calendar.BuildGrid(2025, 5)
	require.Equal(t, calendar.DayCell{Day: 1, Month: 5, Year: 2025, IsCurrentMonth: true}, cells[0])
	require.Equal(t, time.Sunday, cells[0].Date(time.UTC).Weekday())
}

func TestBuildGrid_YearBoundaries(t *testing.T) {
	jan := calendar.BuildGrid(2025, 0)
	// January 2025 starts on a Wednesday: three December 2024 cells lead.
	require.Equal(t, calendar.DayCell{Day: 29, Month: 11, Year: 2024}, jan[0])
	require.Equal(t, calendar.DayCell{Day: 31, Month: 11, Year: 2024}, jan[2])

	dec := calendar.BuildGrid(2025, 11)
	last := dec[len(dec)-1]
	require.False(t, last.IsCurrentMonth)
	require.Equal(t, 0, last.Month)
	require.Equal(t, 2026, last.Year)
}

func TestBuildGrid_Idempotent(t *testing.T) {
	a := calendar.BuildGrid(2024, 1)
	b := calendar.BuildGrid(2024, 1)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("grid mismatch (-first +second):\n%s", diff)
	}
}

func TestBuildGrid_NormalizesOutOfRangeMonth(t *testing.T) {
	if diff := cmp.Diff(calendar.BuildGrid(2026, 0), calendar.BuildGrid(2025, 12)); diff != "" {
		t.Fatalf("month 12 should roll into January (-want +got):\n%s", diff)
	}
}

func TestEventsForDay(t *testing.T) {
	events := []calendar.CalendarEvent{
		{ID: "a", Start: time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)},
		{ID: "b", Start: time.Date(2025, 4, 18, 9, 0, 0, 0, time.UTC)},
		{ID: "c", Start: time.Date(2025, 4, 17, 23, 0, 0, 0, time.UTC)},
		{ID: "d", Start: time.Date(2024, 4, 17, 8, 0, 0, 0, time.UTC)},
	}
	before := append([]calendar.CalendarEvent(nil), events...)

	got := calendar.EventsForDay(events, 17, 3, 2025)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "c", got[1].ID)

	got = calendar.EventsForDay(events, 18, 3, 2025)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].ID)

	require.Empty(t, calendar.EventsForDay(events, 19, 3, 2025))
	require.Equal(t, before, events)
}

func TestEventsForDay_UsesStartLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ev := calendar.CalendarEvent{ID: "x", Start: time.Date(2025, 4, 17, 20, 0, 0, 0, time.UTC).In(tokyo)}

	require.Empty(t, calendar.EventsForDay([]calendar.CalendarEvent{ev}, 17, 3, 2025))
	require.Len(t, calendar.EventsForDay([]calendar.CalendarEvent{ev}, 18, 3, 2025), 1)
}

func TestEveryEventLandsOnExactlyOneCell(t *testing.T) {
	events := []calendar.CalendarEvent{
		{ID: "a", Start: time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC)},
		{ID: "b", Start: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "c", Start: time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC)},
	}
	counts := map[string]int{}
	for _, c := range calendar.BuildGrid(2025, 3) {
		for _, ev := range calendar.EventsForDay(events, c.Day, c.Month, c.Year) {
			counts[ev.ID]++
		}
	}
	require.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, counts)
}
