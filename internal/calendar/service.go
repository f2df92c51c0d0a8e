package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/cadence/internal/domain/schedule"
)

// ScheduleSource lists a user's schedules that may occur within a range.
type ScheduleSource interface {
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]schedule.Schedule, error)
}

// TitleSource resolves content titles for event labels.
type TitleSource interface {
	Titles(ctx context.Context, userID string, ids []string) (map[string]string, error)
}

// Service renders calendar views from stored schedules.
type Service struct {
	schedules ScheduleSource
	titles    TitleSource
}

// NewService creates a calendar service.
func NewService(schedules ScheduleSource, titles TitleSource) *Service {
	return &Service{schedules: schedules, titles: titles}
}

// Events returns the events occurring in [from, to], expanded and projected into loc.
func (s *Service) Events(ctx context.Context, userID string, from, to time.Time, loc *time.Location) ([]CalendarEvent, error) {
	scheds, err := s.schedules.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	occurrences := ExpandRecurring(scheds, from, to)

	titles, err := s.Titles(ctx, userID, occurrences)
	if err != nil {
		return nil, err
	}
	return EventsFromSchedules(occurrences, titles, loc), nil
}

// Titles looks up the content titles referenced by schedules.
func (s *Service) Titles(ctx context.Context, userID string, scheds []schedule.Schedule) (map[string]string, error) {
	if s.titles == nil || len(scheds) == 0 {
		return map[string]string{}, nil
	}
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(scheds))
	for _, sched := range scheds {
		if _, ok := seen[sched.ContentID]; ok {
			continue
		}
		seen[sched.ContentID] = struct{}{}
		ids = append(ids, sched.ContentID)
	}
	titles, err := s.titles.Titles(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("loading titles: %w", err)
	}
	return titles, nil
}

// Month renders the grid for a zero-based month as seen from loc.
func (s *Service) Month(ctx context.Context, userID string, year, month int, loc *time.Location, now time.Time) (*MonthView, error) {
	if loc == nil {
		loc = time.UTC
	}
	grid := BuildGrid(year, month)
	from := grid[0].Date(loc)
	to := grid[len(grid)-1].Date(loc).AddDate(0, 0, 1).Add(-time.Nanosecond)

	events, err := s.Events(ctx, userID, from, to, loc)
	if err != nil {
		return nil, err
	}
	view := BuildMonth(year, month, events, now.In(loc))
	return &view, nil
}

// Week renders the Sunday..Saturday week containing date as seen from loc.
func (s *Service) Week(ctx context.Context, userID string, date time.Time, loc *time.Location, now time.Time) (*WeekView, error) {
	if loc == nil {
		loc = time.UTC
	}
	date = date.In(loc)
	start := time.Date(date.Year(), date.Month(), date.Day()-int(date.Weekday()), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

	events, err := s.Events(ctx, userID, start, end, loc)
	if err != nil {
		return nil, err
	}
	view := BuildWeek(date, events, now.In(loc))
	return &view, nil
}

// Day returns the events of one day (zero-based month) as seen from loc.
func (s *Service) Day(ctx context.Context, userID string, year, month, day int, loc *time.Location) ([]CalendarEvent, error) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	events, err := s.Events(ctx, userID, from, to, loc)
	if err != nil {
		return nil, err
	}
	return EventsForDay(events, from.Day(), int(from.Month())-1, from.Year()), nil
}
