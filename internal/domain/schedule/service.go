package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // IANA zones must load without a system zoneinfo database

	"github.com/google/uuid"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/repository"
)

// DefaultTimeZone is used when a request omits the time zone.
const DefaultTimeZone = "UTC"

// Service handles schedule business logic.
type Service struct {
	schedules  Repository
	contents   ContentRepository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new schedule service.
func NewService(
	schedules Repository,
	contents ContentRepository,
	activities ActivityRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		schedules:  schedules,
		contents:   contents,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateRequest describes a request to schedule a content item.
type CreateRequest struct {
	ContentID    string
	ScheduledFor time.Time
	TimeZone     string
	PlatformIDs  []string
	Recurrence   string
}

// ScheduleContent creates a schedule for existing content.
func (s *Service) ScheduleContent(ctx context.Context, userID string, req CreateRequest) (*Schedule, error) {
	if strings.TrimSpace(req.ContentID) == "" || req.ScheduledFor.IsZero() {
		return nil, ErrInvalidInput
	}

	tz := strings.TrimSpace(req.TimeZone)
	if tz == "" {
		tz = DefaultTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrInvalidTimeZone
	}

	recurrence := strings.TrimPrefix(strings.TrimSpace(req.Recurrence), "RRULE:")
	if recurrence != "" {
		if _, err := ParseRecurrence(recurrence, req.ScheduledFor.In(loc)); err != nil {
			return nil, ErrInvalidRecurrence
		}
	}

	item, err := s.contents.Get(ctx, userID, req.ContentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("loading content: %w", err)
	}

	platformIDs := dedupe(req.PlatformIDs)
	if len(platformIDs) == 0 {
		platformIDs = item.PlatformIDs()
	}
	if len(platformIDs) == 0 {
		return nil, ErrNoPlatforms
	}

	now := s.now().UTC()
	sched := &Schedule{
		ID:           uuid.NewString(),
		UserID:       userID,
		ContentID:    item.ID,
		ScheduledFor: req.ScheduledFor.UTC(),
		SeriesStart:  req.ScheduledFor.UTC(),
		TimeZone:     tz,
		Status:       StatusScheduled,
		PlatformIDs:  platformIDs,
		Recurrence:   recurrence,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.schedules.Create(ctx, userID, sched); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("creating schedule: %w", err)
	}

	if item.Status == content.StatusDraft {
		item.Status = content.StatusScheduled
		item.UpdatedAt = now
		if err := s.contents.Update(ctx, userID, item); err != nil {
			return nil, fmt.Errorf("marking content scheduled: %w", err)
		}
	}

	s.logActivity(ctx, userID, sched, activity.TypeContentScheduled,
		fmt.Sprintf("scheduled content %s for %s", sched.ContentID, sched.ScheduledFor.Format(time.RFC3339)))
	return sched, nil
}

// Get fetches a schedule by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Schedule, error) {
	sched, err := s.schedules.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("getting schedule: %w", err)
	}
	return sched, nil
}

// List returns schedules ordered by scheduled instant.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]Schedule, error) {
	if opts.Status != "" && !validStatus(opts.Status) {
		return nil, ErrInvalidInput
	}
	scheds, err := s.schedules.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	if scheds == nil {
		scheds = []Schedule{}
	}
	return scheds, nil
}

// ListRange returns schedules whose instant falls in [from, to]. Recurring
// schedules are included whenever their first instant is not after to, so
// callers can expand them across the range.
func (s *Service) ListRange(ctx context.Context, userID string, from, to time.Time) ([]Schedule, error) {
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	all, err := s.List(ctx, userID, ListOptions{To: &to})
	if err != nil {
		return nil, err
	}
	out := make([]Schedule, 0, len(all))
	for _, sched := range all {
		if sched.Recurring() || !sched.ScheduledFor.Before(from) {
			out = append(out, sched)
		}
	}
	return out, nil
}

// Reschedule moves a schedule to a new instant and re-arms it. A recurring
// schedule is re-anchored, so its series restarts at the new instant.
func (s *Service) Reschedule(ctx context.Context, userID, id string, scheduledFor time.Time) (*Schedule, error) {
	if strings.TrimSpace(id) == "" || scheduledFor.IsZero() {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusPosted && !current.Recurring() {
		return nil, ErrAlreadyPosted
	}

	updated := *current
	updated.ScheduledFor = scheduledFor.UTC()
	updated.SeriesStart = scheduledFor.UTC()
	updated.Status = StatusScheduled
	updated.Error = ""
	updated.UpdatedAt = s.now().UTC()

	if err := s.schedules.Update(ctx, userID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("rescheduling: %w", err)
	}

	s.logActivity(ctx, userID, &updated, activity.TypeScheduleRescheduled,
		fmt.Sprintf("rescheduled %s to %s", updated.ID, updated.ScheduledFor.Format(time.RFC3339)))
	return &updated, nil
}

// Cancel deletes a schedule. Content left with no schedules drops back to draft.
func (s *Service) Cancel(ctx context.Context, userID, id string) error {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("cancelling schedule: %w", err)
	}

	remaining, err := s.schedules.CountForContent(ctx, userID, current.ContentID)
	if err != nil {
		return fmt.Errorf("counting schedules: %w", err)
	}
	if remaining == 0 {
		item, err := s.contents.Get(ctx, userID, current.ContentID)
		if err == nil && item.Status == content.StatusScheduled {
			item.Status = content.StatusDraft
			item.UpdatedAt = s.now().UTC()
			if err := s.contents.Update(ctx, userID, item); err != nil {
				return fmt.Errorf("reverting content to draft: %w", err)
			}
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("loading content: %w", err)
		}
	}

	s.logActivity(ctx, userID, current, activity.TypeScheduleCancelled, fmt.Sprintf("cancelled schedule %s", id))
	return nil
}

// Due returns schedules across all users that should be published by now.
func (s *Service) Due(ctx context.Context, now time.Time, limit int) ([]Schedule, error) {
	if limit <= 0 {
		limit = 100
	}
	due, err := s.schedules.ListDue(ctx, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing due schedules: %w", err)
	}
	return due, nil
}

// MarkPosted records a successful publish. Recurring schedules advance to
// their next occurrence and stay scheduled until the rule is exhausted.
func (s *Service) MarkPosted(ctx context.Context, userID, id string, at time.Time) (*Schedule, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Error = ""
	updated.UpdatedAt = at.UTC()
	updated.Status = StatusPosted
	if next, ok := current.NextOccurrence(at); ok {
		updated.ScheduledFor = next
		updated.Status = StatusScheduled
	}

	if err := s.schedules.Update(ctx, userID, &updated); err != nil {
		return nil, fmt.Errorf("marking schedule posted: %w", err)
	}

	item, err := s.contents.Get(ctx, userID, current.ContentID)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	if item.Status != content.StatusPublished {
		publishedAt := at.UTC()
		item.Status = content.StatusPublished
		item.PublishedAt = &publishedAt
		item.UpdatedAt = publishedAt
		if err := s.contents.Update(ctx, userID, item); err != nil {
			return nil, fmt.Errorf("marking content published: %w", err)
		}
	}

	s.logActivity(ctx, userID, &updated, activity.TypeSchedulePosted, fmt.Sprintf("posted schedule %s", id))
	return &updated, nil
}

// MarkFailed records a failed publish with its reason.
func (s *Service) MarkFailed(ctx context.Context, userID, id, reason string, at time.Time) (*Schedule, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = StatusFailed
	updated.Error = reason
	updated.UpdatedAt = at.UTC()

	if err := s.schedules.Update(ctx, userID, &updated); err != nil {
		return nil, fmt.Errorf("marking schedule failed: %w", err)
	}

	s.logActivity(ctx, userID, &updated, activity.TypeScheduleFailed, fmt.Sprintf("schedule %s failed: %s", id, reason))
	return &updated, nil
}

func (s *Service) logActivity(ctx context.Context, userID string, sched *Schedule, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	contentID := sched.ContentID
	scheduleID := sched.ID
	if err := s.activities.Log(ctx, userID, &activity.ActivityEntry{
		ContentID:    &contentID,
		ScheduleID:   &scheduleID,
		ActivityType: typ,
		Summary:      summary,
	}); err != nil && s.logger != nil {
		s.logger.Warn("failed to log schedule activity", "schedule_id", scheduleID, "error", err)
	}
}

func validStatus(st Status) bool {
	switch st {
	case StatusScheduled, StatusPosted, StatusFailed:
		return true
	}
	return false
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
