package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/repository"
)

// ScheduleRepository implements schedule.Repository for SQLite
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `
	id, user_id, content_id, scheduled_for, series_start, time_zone, status,
	platform_ids, recurrence, error, created_at, updated_at
`

// Create inserts a schedule
func (r *ScheduleRepository) Create(ctx context.Context, userID string, sched *schedule.Schedule) error {
	platformIDs, err := encodeStrings(sched.PlatformIDs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sched.ID,
		userID,
		sched.ContentID,
		sched.ScheduledFor.UTC(),
		sched.Start().UTC(),
		sched.TimeZone,
		sched.Status,
		platformIDs,
		sched.Recurrence,
		sched.Error,
		sched.CreatedAt.UTC(),
		sched.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", mapWriteError(err))
	}

	sched.UserID = userID
	return nil
}

// Get retrieves a schedule by ID
func (r *ScheduleRepository) Get(ctx context.Context, userID, id string) (*schedule.Schedule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = ? AND user_id = ?
	`, id, userID)

	sched, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return sched, nil
}

// Update overwrites the mutable fields of a schedule
func (r *ScheduleRepository) Update(ctx context.Context, userID string, sched *schedule.Schedule) error {
	platformIDs, err := encodeStrings(sched.PlatformIDs)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE schedules
		SET scheduled_for = ?, series_start = ?, time_zone = ?, status = ?,
			platform_ids = ?, recurrence = ?, error = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`,
		sched.ScheduledFor.UTC(),
		sched.Start().UTC(),
		sched.TimeZone,
		sched.Status,
		platformIDs,
		sched.Recurrence,
		sched.Error,
		sched.UpdatedAt.UTC(),
		sched.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", mapWriteError(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a schedule
func (r *ScheduleRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns schedules matching the filters, ordered by scheduled instant
func (r *ScheduleRepository) List(ctx context.Context, userID string, opts schedule.ListOptions) ([]schedule.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = ?`
	args := []interface{}{userID}
	conditions := []string{}

	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}
	if opts.ContentID != "" {
		conditions = append(conditions, "content_id = ?")
		args = append(args, opts.ContentID)
	}
	if opts.From != nil {
		conditions = append(conditions, "scheduled_for >= ?")
		args = append(args, opts.From.UTC())
	}
	if opts.To != nil {
		// a recurring series reaches back to its first occurrence
		conditions = append(conditions, "(CASE WHEN recurrence != '' THEN series_start ELSE scheduled_for END) <= ?")
		args = append(args, opts.To.UTC())
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY scheduled_for, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	return r.query(ctx, query, args...)
}

// CountForContent counts the schedules of one content item
func (r *ScheduleRepository) CountForContent(ctx context.Context, userID, contentID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = ? AND content_id = ?`,
		userID, contentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return n, nil
}

// ListDue returns scheduled entries at or before now across all users, oldest first
func (r *ScheduleRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]schedule.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE status = ? AND scheduled_for <= ?
		ORDER BY scheduled_for, id
	`
	args := []interface{}{schedule.StatusScheduled, now.UTC()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

func (r *ScheduleRepository) query(ctx context.Context, query string, args ...interface{}) ([]schedule.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	scheds := []schedule.Schedule{}
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		scheds = append(scheds, *sched)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}
	return scheds, nil
}

func scanSchedule(row rowScanner) (*schedule.Schedule, error) {
	var sched schedule.Schedule
	var platformIDs string
	if err := row.Scan(
		&sched.ID,
		&sched.UserID,
		&sched.ContentID,
		&sched.ScheduledFor,
		&sched.SeriesStart,
		&sched.TimeZone,
		&sched.Status,
		&platformIDs,
		&sched.Recurrence,
		&sched.Error,
		&sched.CreatedAt,
		&sched.UpdatedAt,
	); err != nil {
		return nil, err
	}
	sched.ScheduledFor = sched.ScheduledFor.UTC()
	sched.SeriesStart = sched.SeriesStart.UTC()
	sched.CreatedAt = sched.CreatedAt.UTC()
	sched.UpdatedAt = sched.UpdatedAt.UTC()

	var err error
	if sched.PlatformIDs, err = decodeStrings(platformIDs); err != nil {
		return nil, err
	}
	return &sched, nil
}
