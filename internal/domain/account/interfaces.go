package account

import (
	"context"
	"time"
)

// Repository provides persistence for users and their bearer tokens.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	StoreToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	ResolveToken(ctx context.Context, tokenHash string, now time.Time) (string, error)
	DeleteToken(ctx context.Context, tokenHash string) error
}
