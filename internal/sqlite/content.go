package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/repository"
)

// ContentRepository implements content.Repository for SQLite
type ContentRepository struct {
	db *DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `
	c.id, c.user_id, c.title, c.description, c.content_type, c.status,
	c.tags, c.created_at, c.updated_at, c.published_at
`

// Create inserts a content item and its platform links
func (r *ContentRepository) Create(ctx context.Context, userID string, item *content.Item) error {
	tags, err := encodeStrings(item.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO content_items (
			id, user_id, title, description, content_type, status,
			tags, created_at, updated_at, published_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		userID,
		item.Title,
		item.Description,
		item.ContentType,
		item.Status,
		tags,
		item.CreatedAt.UTC(),
		item.UpdatedAt.UTC(),
		nullTime(item.PublishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", mapWriteError(err))
	}

	if err := replacePlatforms(ctx, tx, item.ID, item.Platforms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content: %w", err)
	}

	item.UserID = userID
	return nil
}

// Get retrieves a content item by ID
func (r *ContentRepository) Get(ctx context.Context, userID, id string) (*content.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contentColumns+`
		FROM content_items c
		WHERE c.id = ? AND c.user_id = ?
	`, id, userID)

	item, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	items := []content.Item{*item}
	if err := r.attachPlatforms(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update overwrites a content item and its platform links
func (r *ContentRepository) Update(ctx context.Context, userID string, item *content.Item) error {
	tags, err := encodeStrings(item.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE content_items
		SET title = ?, description = ?, content_type = ?, status = ?,
			tags = ?, updated_at = ?, published_at = ?
		WHERE id = ? AND user_id = ?
	`,
		item.Title,
		item.Description,
		item.ContentType,
		item.Status,
		tags,
		item.UpdatedAt.UTC(),
		nullTime(item.PublishedAt),
		item.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", mapWriteError(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := replacePlatforms(ctx, tx, item.ID, item.Platforms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content: %w", err)
	}
	return nil
}

// Delete removes a content item; schedules, links and metrics cascade
func (r *ContentRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns one page of matching content, newest first, and the total match count
func (r *ContentRepository) List(ctx context.Context, userID string, opts content.ListOptions) ([]content.Item, int, error) {
	where := []string{"c.user_id = ?"}
	args := []interface{}{userID}

	if opts.Status != "" {
		where = append(where, "c.status = ?")
		args = append(args, opts.Status)
	}
	if opts.Type != "" {
		where = append(where, "c.content_type = ?")
		args = append(args, opts.Type)
	}
	if opts.Query != "" {
		where = append(where, "(LOWER(c.title) LIKE ? ESCAPE '\\' OR LOWER(c.description) LIKE ? ESCAPE '\\' OR LOWER(c.tags) LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(strings.ToLower(opts.Query)) + "%"
		args = append(args, pattern, pattern, pattern)
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_items c WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count content: %w", err)
	}

	query := `SELECT ` + contentColumns + ` FROM content_items c WHERE ` + clause + ` ORDER BY c.created_at DESC, c.id`
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

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list content: %w", err)
	}
	items, err := collectContent(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachPlatforms(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Titles maps content IDs to titles for the given user
func (r *ContentRepository) Titles(ctx context.Context, userID string, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	args := []interface{}{userID}
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title FROM content_items WHERE user_id = ? AND id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating titles: %w", err)
	}
	return titles, nil
}

func (r *ContentRepository) attachPlatforms(ctx context.Context, items []content.Item) error {
	if len(items) == 0 {
		return nil
	}

	index := make(map[string]int, len(items))
	args := make([]interface{}, 0, len(items))
	for i := range items {
		items[i].Platforms = []content.PlatformRef{}
		index[items[i].ID] = i
		args = append(args, items[i].ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT content_id, platform_id, name
		FROM content_platforms
		WHERE content_id IN (`+placeholders(len(items))+`)
		ORDER BY content_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to load content platforms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contentID string
		var ref content.PlatformRef
		if err := rows.Scan(&contentID, &ref.PlatformID, &ref.Name); err != nil {
			return fmt.Errorf("failed to scan content platform: %w", err)
		}
		ref.ID = ref.PlatformID
		i := index[contentID]
		items[i].Platforms = append(items[i].Platforms, ref)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating content platforms: %w", err)
	}
	return nil
}

func replacePlatforms(ctx context.Context, tx *sql.Tx, contentID string, refs []content.PlatformRef) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM content_platforms WHERE content_id = ?`, contentID); err != nil {
		return fmt.Errorf("failed to clear content platforms: %w", err)
	}
	for i, ref := range refs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO content_platforms (content_id, platform_id, name, position)
			VALUES (?, ?, ?, ?)
		`, contentID, ref.PlatformID, ref.Name, i); err != nil {
			return fmt.Errorf("failed to link content platform: %w", mapWriteError(err))
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContent(row rowScanner) (*content.Item, error) {
	var item content.Item
	var tags string
	var publishedAt sql.NullTime
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Description,
		&item.ContentType,
		&item.Status,
		&tags,
		&item.CreatedAt,
		&item.UpdatedAt,
		&publishedAt,
	); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		item.PublishedAt = &t
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	var err error
	if item.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &item, nil
}

// collectContent scans and closes rows so the connection is free for follow-up queries.
func collectContent(rows *sql.Rows) ([]content.Item, error) {
	defer rows.Close()

	items := []content.Item{}
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}
	return items, nil
}
