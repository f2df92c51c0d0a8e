package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertContent(t *testing.T, db *DB, id, userID, title string) *content.Item {
	t.Helper()
	now := time.Now().UTC()
	item := &content.Item{
		ID:          id,
		Title:       title,
		ContentType: content.TypePost,
		Status:      content.StatusDraft,
		Platforms:   []content.PlatformRef{},
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, NewContentRepository(db).Create(context.Background(), userID, item))
	return item
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"users",
		"auth_tokens",
		"platforms",
		"content_items",
		"content_platforms",
		"schedules",
		"content_metrics",
		"activity_log",
		"content_fts",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsIdempotent verifies the schema can be applied twice
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestContentConstraints verifies the enumerated columns reject unknown values
func TestContentConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO content_items (id, user_id, title, content_type, status) VALUES (?, ?, ?, ?, ?)`,
		"c1", "user1", "Title", "podcast", "draft")
	require.Error(t, err, "should fail with invalid content type")

	_, err = db.ExecContext(ctx,
		`INSERT INTO schedules (id, user_id, content_id, scheduled_for, series_start, time_zone, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"s1", "user1", "missing", time.Now().UTC(), time.Now().UTC(), "UTC", "scheduled")
	require.Error(t, err, "should fail with unknown content")
}

// TestFTSIndex verifies the full-text index follows inserts, updates and deletes
func TestFTSIndex(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertContent(t, db, "c1", "user1", "Unique Launch Title")

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_fts WHERE content_fts MATCH ?`, "unique").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = db.ExecContext(ctx, `UPDATE content_items SET title = ? WHERE id = ?`, "Updated Title", "c1")
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_fts WHERE content_fts MATCH ?`, "updated").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_fts WHERE content_fts MATCH ?`, "unique").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	_, err = db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, "c1")
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_fts WHERE content_fts MATCH ?`, "updated").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestWithTimeFormat(t *testing.T) {
	require.Equal(t, ":memory:?_time_format=sqlite", withTimeFormat(":memory:"))
	require.Equal(t, "file:x.db?mode=rwc&_time_format=sqlite", withTimeFormat("file:x.db?mode=rwc"))
	require.Equal(t, "x.db?_time_format=sqlite", withTimeFormat("x.db?_time_format=sqlite"))
}
