package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
)

// MetricsRepository implements analytics.Repository for SQLite
type MetricsRepository struct {
	db *DB
}

// NewMetricsRepository creates a new MetricsRepository
func NewMetricsRepository(db *DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

const metricRowQuery = `
	SELECT
		m.content_id, m.platform_id, m.day,
		m.impressions, m.engagements, m.clicks, m.shares, m.likes, m.comments,
		c.content_type,
		COALESCE(p.type, ''),
		COALESCE(p.name, '')
	FROM content_metrics m
	JOIN content_items c ON c.id = m.content_id
	LEFT JOIN platforms p ON p.id = m.platform_id AND p.user_id = m.user_id
`

// Record stores one day of counters, replacing any earlier report for that day
func (r *MetricsRepository) Record(ctx context.Context, userID string, m *analytics.Metrics) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content_metrics (
			user_id, content_id, platform_id, day,
			impressions, engagements, clicks, shares, likes, comments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_id, platform_id, day) DO UPDATE SET
			impressions = excluded.impressions,
			engagements = excluded.engagements,
			clicks = excluded.clicks,
			shares = excluded.shares,
			likes = excluded.likes,
			comments = excluded.comments
	`,
		userID,
		m.ContentID,
		m.PlatformID,
		m.Day,
		m.Impressions,
		m.Engagements,
		m.Clicks,
		m.Shares,
		m.Likes,
		m.Comments,
	)
	if err != nil {
		return fmt.Errorf("failed to record metrics: %w", mapWriteError(err))
	}
	return nil
}

// ForContent returns every metric row of one content item
func (r *MetricsRepository) ForContent(ctx context.Context, userID, contentID string) ([]analytics.MetricRow, error) {
	return r.rows(ctx, metricRowQuery+`
		WHERE m.user_id = ? AND m.content_id = ?
		ORDER BY m.day, m.platform_id
	`, userID, contentID)
}

// InRange returns metric rows whose day lies in [startDay, endDay]
func (r *MetricsRepository) InRange(ctx context.Context, userID, startDay, endDay string) ([]analytics.MetricRow, error) {
	return r.rows(ctx, metricRowQuery+`
		WHERE m.user_id = ? AND m.day BETWEEN ? AND ?
		ORDER BY m.day, m.platform_id
	`, userID, startDay, endDay)
}

// ContentTypeCounts counts content created in [startDay, endDay] by type
func (r *MetricsRepository) ContentTypeCounts(ctx context.Context, userID, startDay, endDay string) (map[content.ContentType]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT content_type, COUNT(*)
		FROM content_items
		WHERE user_id = ? AND substr(created_at, 1, 10) BETWEEN ? AND ?
		GROUP BY content_type
	`, userID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count content types: %w", err)
	}
	defer rows.Close()

	counts := map[content.ContentType]int{}
	for rows.Next() {
		var typ content.ContentType
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("failed to scan content type count: %w", err)
		}
		counts[typ] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content type counts: %w", err)
	}
	return counts, nil
}

// PostsPerDay counts successful publications per day from the activity log
func (r *MetricsRepository) PostsPerDay(ctx context.Context, userID, startDay, endDay string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT substr(created_at, 1, 10) AS day, COUNT(*)
		FROM activity_log
		WHERE user_id = ? AND activity_type = ? AND substr(created_at, 1, 10) BETWEEN ? AND ?
		GROUP BY day
	`, userID, activity.TypeSchedulePosted, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("failed to scan post count: %w", err)
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post counts: %w", err)
	}
	return counts, nil
}

func (r *MetricsRepository) rows(ctx context.Context, query string, args ...interface{}) ([]analytics.MetricRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}
	defer rows.Close()

	out := []analytics.MetricRow{}
	for rows.Next() {
		var row analytics.MetricRow
		if err := rows.Scan(
			&row.ContentID,
			&row.PlatformID,
			&row.Day,
			&row.Impressions,
			&row.Engagements,
			&row.Clicks,
			&row.Shares,
			&row.Likes,
			&row.Comments,
			&row.ContentType,
			&row.PlatformType,
			&row.PlatformName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metrics: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metrics: %w", err)
	}
	return out, nil
}
