package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/cadence/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// DefaultTokenTTL is how long issued tokens stay valid.
	DefaultTokenTTL = 30 * 24 * time.Hour
)

// Service handles registration, login and token resolution.
type Service struct {
	repo     Repository
	tokenTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new account service. A non-positive ttl uses DefaultTokenTTL.
func NewService(repo Repository, tokenTTL time.Duration, logger *slog.Logger) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{repo: repo, tokenTTL: tokenTTL, logger: logger, now: time.Now}
}

// RegisterRequest defines registration inputs.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user and signs them in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || len(req.Password) < MinPasswordLength {
		return nil, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issue(ctx, user)
}

// Login verifies credentials and issues a new token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// Me returns the user behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// Logout revokes a token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrUnauthorized
	}
	if err := s.repo.DeleteToken(ctx, HashToken(token)); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// ResolveUser maps a bearer token to its user ID.
func (s *Service) ResolveUser(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthorized
	}
	userID, err := s.repo.ResolveToken(ctx, HashToken(token), s.now().UTC())
	if err != nil || userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

func (s *Service) issue(ctx context.Context, user *User) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	expiresAt := s.now().UTC().Add(s.tokenTTL)
	if err := s.repo.StoreToken(ctx, HashToken(token), user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("session issued", "user_id", user.ID)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// HashToken returns the stored form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
