package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/repository"
)

// PlatformRepository implements platform.Repository for SQLite
type PlatformRepository struct {
	db *DB
}

// NewPlatformRepository creates a new PlatformRepository
func NewPlatformRepository(db *DB) *PlatformRepository {
	return &PlatformRepository{db: db}
}

const platformColumns = `
	id, user_id, name, type, connected, account_name, account_id, icon_url, created_at
`

// Get retrieves a platform by ID
func (r *PlatformRepository) Get(ctx context.Context, userID, id string) (*platform.Platform, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+platformColumns+`
		FROM platforms WHERE id = ? AND user_id = ?`, id, userID)
	return r.scanOne(row)
}

// GetByType retrieves the user's platform of a type
func (r *PlatformRepository) GetByType(ctx context.Context, userID string, typ platform.Type) (*platform.Platform, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+platformColumns+`
		FROM platforms WHERE user_id = ? AND type = ?`, userID, typ)
	return r.scanOne(row)
}

// List returns the user's platforms by name
func (r *PlatformRepository) List(ctx context.Context, userID string) ([]platform.Platform, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+platformColumns+`
		FROM platforms WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	defer rows.Close()

	platforms := []platform.Platform{}
	for rows.Next() {
		p, err := scanPlatform(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan platform: %w", err)
		}
		platforms = append(platforms, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating platforms: %w", err)
	}
	return platforms, nil
}

// Upsert inserts a platform or updates its connection state
func (r *PlatformRepository) Upsert(ctx context.Context, userID string, p *platform.Platform) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO platforms (`+platformColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			connected = excluded.connected,
			account_name = excluded.account_name,
			account_id = excluded.account_id,
			icon_url = excluded.icon_url
		WHERE platforms.user_id = excluded.user_id
	`,
		p.ID,
		userID,
		p.Name,
		p.Type,
		p.Connected,
		p.AccountName,
		p.AccountID,
		p.IconURL,
		p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save platform: %w", mapWriteError(err))
	}
	p.UserID = userID
	return nil
}

func (r *PlatformRepository) scanOne(row *sql.Row) (*platform.Platform, error) {
	p, err := scanPlatform(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	return p, nil
}

func scanPlatform(row rowScanner) (*platform.Platform, error) {
	var p platform.Platform
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Type,
		&p.Connected,
		&p.AccountName,
		&p.AccountID,
		&p.IconURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
