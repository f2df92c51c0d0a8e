package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/repository"
)

// DefaultRangeDays is the window used when no range is requested.
const DefaultRangeDays = 7

// MaxRangeDays bounds a requested range, inclusive of both ends.
const MaxRangeDays = 366

// Service computes engagement analytics.
type Service struct {
	metrics   Repository
	contents  ContentRepository
	platforms PlatformRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new analytics service.
func NewService(metrics Repository, contents ContentRepository, platforms PlatformRepository, logger *slog.Logger) *Service {
	return &Service{metrics: metrics, contents: contents, platforms: platforms, logger: logger, now: time.Now}
}

// WithClock replaces the clock that dates counters recorded without a day.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordRequest describes one day of counters for a content item.
type RecordRequest struct {
	PlatformID string
	Date       string
	Counters
}

// ResolveRange parses YYYY-MM-DD (or RFC3339) bounds. Missing bounds default
// to the DefaultRangeDays days ending today in UTC. Ranges longer than
// MaxRangeDays are rejected.
func ResolveRange(start, end string, now time.Time) (Range, error) {
	today := truncateDay(now.UTC())
	r := Range{Start: today.AddDate(0, 0, -(DefaultRangeDays - 1)), End: today}

	if strings.TrimSpace(end) != "" {
		t, err := parseDay(end)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
		r.End = t
		if strings.TrimSpace(start) == "" {
			r.Start = t.AddDate(0, 0, -(DefaultRangeDays - 1))
		}
	}
	if strings.TrimSpace(start) != "" {
		t, err := parseDay(start)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
		r.Start = t
	}
	if r.End.Before(r.Start) || r.End.Sub(r.Start) > (MaxRangeDays-1)*24*time.Hour {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// RecordMetrics stores (replacing) one day of counters.
func (s *Service) RecordMetrics(ctx context.Context, userID, contentID string, req RecordRequest) (*Metrics, error) {
	if strings.TrimSpace(contentID) == "" || strings.TrimSpace(req.PlatformID) == "" {
		return nil, ErrInvalidInput
	}
	c := req.Counters
	if c.Impressions < 0 || c.Engagements < 0 || c.Clicks < 0 || c.Shares < 0 || c.Likes < 0 || c.Comments < 0 {
		return nil, ErrInvalidInput
	}

	day := truncateDay(s.now().UTC())
	if strings.TrimSpace(req.Date) != "" {
		t, err := parseDay(req.Date)
		if err != nil {
			return nil, ErrInvalidInput
		}
		day = t
	}

	if _, err := s.contents.Get(ctx, userID, contentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("loading content: %w", err)
	}

	m := &Metrics{
		ContentID:  contentID,
		PlatformID: req.PlatformID,
		Day:        day.Format(DayLayout),
		Counters:   c,
	}
	if err := s.metrics.Record(ctx, userID, m); err != nil {
		return nil, fmt.Errorf("recording metrics: %w", err)
	}
	return m, nil
}

// ForContent sums every metric of one content item, split by platform.
func (s *Service) ForContent(ctx context.Context, userID, contentID string) (*ContentAnalytics, error) {
	if _, err := s.contents.Get(ctx, userID, contentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("loading content: %w", err)
	}

	rows, err := s.metrics.ForContent(ctx, userID, contentID)
	if err != nil {
		return nil, fmt.Errorf("loading metrics: %w", err)
	}

	result := &ContentAnalytics{ContentID: contentID, PlatformSpecific: map[string]Counters{}}
	for _, row := range rows {
		result.Counters.add(row.Counters)
		key := platformKey(row)
		per := result.PlatformSpecific[key]
		per.add(row.Counters)
		result.PlatformSpecific[key] = per
	}
	return result, nil
}

// Overall builds the dashboard summary for a range.
func (s *Service) Overall(ctx context.Context, userID string, r Range) (*OverallAnalytics, error) {
	rows, err := s.metrics.InRange(ctx, userID, r.StartDay(), r.EndDay())
	if err != nil {
		return nil, fmt.Errorf("loading metrics: %w", err)
	}
	types, err := s.ContentTypes(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	posts, err := s.metrics.PostsPerDay(ctx, userID, r.StartDay(), r.EndDay())
	if err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}

	out := &OverallAnalytics{
		StartDate:            r.StartDay(),
		EndDate:              r.EndDay(),
		PlatformBreakdown:    map[string]PlatformAnalytics{},
		ContentTypeBreakdown: types,
	}
	for _, n := range types {
		out.TotalContentCount += n
	}

	byDay := map[string]*TimePerformance{}
	for _, day := range r.Days() {
		byDay[day] = &TimePerformance{Date: day, Posts: posts[day]}
	}

	platformContent := map[string]map[string]struct{}{}
	for _, row := range rows {
		out.TotalImpressions += row.Impressions
		out.TotalEngagements += row.Engagements

		key := platformKey(row)
		pa := out.PlatformBreakdown[key]
		pa.Platform = platformName(row)
		pa.Impressions += row.Impressions
		pa.Engagements += row.Engagements
		out.PlatformBreakdown[key] = pa
		if platformContent[key] == nil {
			platformContent[key] = map[string]struct{}{}
		}
		platformContent[key][row.ContentID] = struct{}{}

		if tp, ok := byDay[row.Day]; ok {
			tp.Impressions += row.Impressions
			tp.Engagements += row.Engagements
		}
	}

	for key, pa := range out.PlatformBreakdown {
		pa.ContentCount = len(platformContent[key])
		pa.EngagementRate = EngagementRate(pa.Engagements, pa.Impressions)
		out.PlatformBreakdown[key] = pa
	}
	out.EngagementRate = EngagementRate(out.TotalEngagements, out.TotalImpressions)

	out.TimePerformance = make([]TimePerformance, 0, len(byDay))
	for _, day := range r.Days() {
		out.TimePerformance = append(out.TimePerformance, *byDay[day])
	}
	return out, nil
}

// Platform aggregates a single platform over a range.
func (s *Service) Platform(ctx context.Context, userID, platformID string, r Range) (*PlatformAnalytics, error) {
	p, err := s.platforms.Get(ctx, userID, platformID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("loading platform: %w", err)
	}

	rows, err := s.metrics.InRange(ctx, userID, r.StartDay(), r.EndDay())
	if err != nil {
		return nil, fmt.Errorf("loading metrics: %w", err)
	}

	out := &PlatformAnalytics{Platform: p.Name}
	seen := map[string]struct{}{}
	for _, row := range rows {
		if row.PlatformID != platformID {
			continue
		}
		out.Impressions += row.Impressions
		out.Engagements += row.Engagements
		seen[row.ContentID] = struct{}{}
	}
	out.ContentCount = len(seen)
	out.EngagementRate = EngagementRate(out.Engagements, out.Impressions)
	return out, nil
}

// ContentTypes counts content created in the range by type. Every type is present.
func (s *Service) ContentTypes(ctx context.Context, userID string, r Range) (map[content.ContentType]int, error) {
	counts, err := s.metrics.ContentTypeCounts(ctx, userID, r.StartDay(), r.EndDay())
	if err != nil {
		return nil, fmt.Errorf("counting content types: %w", err)
	}
	out := make(map[content.ContentType]int, len(content.Types))
	for _, t := range content.Types {
		out[t] = counts[t]
	}
	return out, nil
}

func platformKey(row MetricRow) string {
	if row.PlatformType != "" {
		return row.PlatformType
	}
	return row.PlatformID
}

func platformName(row MetricRow) string {
	if row.PlatformName != "" {
		return row.PlatformName
	}
	return row.PlatformID
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(t.UTC()), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
