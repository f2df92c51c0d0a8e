package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/repository"
)

// AccountRepository implements account.Repository for SQLite
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateUser inserts a user; a taken email yields repository.ErrConflict
func (r *AccountRepository) CreateUser(ctx context.Context, user *account.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapWriteError(err))
	}
	return nil
}

// GetUser retrieves a user by ID
func (r *AccountRepository) GetUser(ctx context.Context, id string) (*account.User, error) {
	return r.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	return r.getUser(ctx, `WHERE email = ?`, email)
}

func (r *AccountRepository) getUser(ctx context.Context, where string, arg interface{}) (*account.User, error) {
	var user account.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users `+where, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

// StoreToken records the hash of an issued bearer token
func (r *AccountRepository) StoreToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (token_hash, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, tokenHash, userID, time.Now().UTC(), expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store token: %w", mapWriteError(err))
	}
	return nil
}

// ResolveToken returns the user owning an unexpired token
func (r *AccountRepository) ResolveToken(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id FROM auth_tokens
		WHERE token_hash = ? AND expires_at > ?
	`, tokenHash, now.UTC()).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return userID, nil
}

// DeleteToken revokes a token
func (r *AccountRepository) DeleteToken(ctx context.Context, tokenHash string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PurgeExpiredTokens removes tokens that expired before now
func (r *AccountRepository) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge tokens: %w", err)
	}
	return result.RowsAffected()
}
