package calendar

import (
	"fmt"
	"time"
)

// Cell is a grid cell with the events that fall on it.
type Cell struct {
	DayCell
	IsToday bool            `json:"isToday"`
	Events  []CalendarEvent `json:"events"`
}

// MonthRef identifies a month for navigation. Month is zero-based.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthView is a rendered month: six weeks of cells plus navigation targets.
type MonthView struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Label    string   `json:"label"`
	Cells    []Cell   `json:"cells"`
	Previous MonthRef `json:"previous"`
	Next     MonthRef `json:"next"`
}

// WeekView is the Sunday..Saturday week containing a date.
type WeekView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
	Cells []Cell    `json:"cells"`
}

// ShiftMonth moves a zero-based month by delta months, carrying into the year.
func ShiftMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month+1+delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month()) - 1
}

// BuildMonth lays out the month grid and attaches events to each cell.
// today is compared by its own calendar fields.
func BuildMonth(year, month int, events []CalendarEvent, today time.Time) MonthView {
	grid := BuildGrid(year, month)
	cells := make([]Cell, len(grid))
	for i, dc := range grid {
		cells[i] = Cell{
			DayCell: dc,
			IsToday: matches(today, dc.Day, dc.Month, dc.Year),
			Events:  EventsForDay(events, dc.Day, dc.Month, dc.Year),
		}
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	py, pm := ShiftMonth(year, month, -1)
	ny, nm := ShiftMonth(year, month, 1)
	return MonthView{
		Year:     first.Year(),
		Month:    int(first.Month()) - 1,
		Label:    fmt.Sprintf("%s %d", first.Month(), first.Year()),
		Cells:    cells,
		Previous: MonthRef{Year: py, Month: pm},
		Next:     MonthRef{Year: ny, Month: nm},
	}
}

// BuildWeek lays out the seven days from the Sunday on or before date.
func BuildWeek(date time.Time, events []CalendarEvent, today time.Time) WeekView {
	start := time.Date(date.Year(), date.Month(), date.Day()-int(date.Weekday()), 0, 0, 0, 0, date.Location())
	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		dc := DayCell{
			Day:            d.Day(),
			Month:          int(d.Month()) - 1,
			Year:           d.Year(),
			IsCurrentMonth: d.Month() == date.Month(),
		}
		cells = append(cells, Cell{
			DayCell: dc,
			IsToday: matches(today, dc.Day, dc.Month, dc.Year),
			Events:  EventsForDay(events, dc.Day, dc.Month, dc.Year),
		})
	}
	end := start.AddDate(0, 0, 6)
	return WeekView{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006")),
		Cells: cells,
	}
}
