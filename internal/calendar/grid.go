// Package calendar builds the month and week grids shown by the planning
// view and projects schedules onto them.
package calendar

import "time"

// GridSize is the number of cells in a month grid: six full weeks.
const GridSize = 42

// DayCell is one cell of a month grid. Month is zero-based (0 = January).
type DayCell struct {
	Day            int  `json:"day"`
	Month          int  `json:"month"`
	Year           int  `json:"year"`
	IsCurrentMonth bool `json:"isCurrentMonth"`
}

// CalendarEvent is a read-only projection of a schedule placed on the grid.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	Platforms []string  `json:"platforms"`
	ContentID string    `json:"contentId"`
}

// BuildGrid returns the 42 cells for a month view starting on Sunday.
// Out-of-range months and years are normalized by time.Date.
func BuildGrid(year, month int) []DayCell {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	leading := int(first.Weekday())

	prev := first.AddDate(0, 0, -1)
	next := time.Date(year, time.Month(month+2), 1, 0, 0, 0, 0, time.UTC)

	cells := make([]DayCell, 0, GridSize)
	for i := leading - 1; i >= 0; i-- {
		cells = append(cells, DayCell{
			Day:   prev.Day() - i,
			Month: int(prev.Month()) - 1,
			Year:  prev.Year(),
		})
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, DayCell{
			Day:            d,
			Month:          int(first.Month()) - 1,
			Year:           first.Year(),
			IsCurrentMonth: true,
		})
	}
	for d := 1; len(cells) < GridSize; d++ {
		cells = append(cells, DayCell{
			Day:   d,
			Month: int(next.Month()) - 1,
			Year:  next.Year(),
		})
	}
	return cells
}

// EventsForDay returns the events whose start falls on the given day, using
// the start's own calendar fields. Month is zero-based. Input order is kept.
func EventsForDay(events []CalendarEvent, day, month, year int) []CalendarEvent {
	out := make([]CalendarEvent, 0)
	for _, ev := range events {
		if matches(ev.Start, day, month, year) {
			out = append(out, ev)
		}
	}
	return out
}

func matches(t time.Time, day, month, year int) bool {
	return t.Day() == day && int(t.Month())-1 == month && t.Year() == year
}

// Date returns the cell's date at midnight in loc.
func (c DayCell) Date(loc *time.Location) time.Time {
	return time.Date(c.Year, time.Month(c.Month+1), c.Day, 0, 0, 0, 0, loc)
}
