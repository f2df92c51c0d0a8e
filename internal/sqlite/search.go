package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/cadence/internal/domain/content"
)

// SearchRepository implements content.SearchRepository for SQLite
type SearchRepository struct {
	db       *DB
	contents *ContentRepository
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db, contents: NewContentRepository(db)}
}

// Search performs a ranked full-text search over titles, descriptions and tags
func (r *SearchRepository) Search(ctx context.Context, userID, query string, opts content.SearchOptions) ([]content.SearchResult, error) {
	match := ftsQuery(query)
	if match == "" {
		return []content.SearchResult{}, nil
	}

	baseQuery := `
		SELECT ` + contentColumns + `,
			-bm25(content_fts) AS rank,
			snippet(content_fts, -1, '[', ']', '...', 12) AS snippet
		FROM content_fts
		JOIN content_items c ON c.rowid = content_fts.rowid
		WHERE c.user_id = ? AND content_fts MATCH ?
	`

	args := []interface{}{userID, match}

	if len(opts.Statuses) > 0 {
		for _, st := range opts.Statuses {
			args = append(args, st)
		}
		baseQuery += fmt.Sprintf(" AND c.status IN (%s)", placeholders(len(opts.Statuses)))
	}

	baseQuery += " ORDER BY rank DESC, c.created_at DESC"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			baseQuery += " LIMIT -1"
		}
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %w", err)
	}

	results := []content.SearchResult{}
	for rows.Next() {
		var result content.SearchResult
		var tags string
		var publishedAt sql.NullTime
		if err := rows.Scan(
			&result.Item.ID,
			&result.Item.UserID,
			&result.Item.Title,
			&result.Item.Description,
			&result.Item.ContentType,
			&result.Item.Status,
			&tags,
			&result.Item.CreatedAt,
			&result.Item.UpdatedAt,
			&publishedAt,
			&result.Rank,
			&result.Snippet,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time.UTC()
			result.Item.PublishedAt = &t
		}
		if result.Item.Tags, err = decodeStrings(tags); err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}
	rows.Close()

	items := make([]content.Item, len(results))
	for i := range results {
		items[i] = results[i].Item
	}
	if err := r.contents.attachPlatforms(ctx, items); err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Item = items[i]
	}

	return results, nil
}

// ftsQuery turns free text into an FTS5 query matching every term as a prefix.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, `""`)
		quoted = append(quoted, `"`+term+`"*`)
	}
	return strings.Join(quoted, " ")
}
