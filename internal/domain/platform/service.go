package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/repository"
)

// Service manages connected platforms.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new platform service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// ConnectRequest describes the account being connected.
type ConnectRequest struct {
	AccountName string
	AccountID   string
	IconURL     string
}

// List returns the user's platforms.
func (s *Service) List(ctx context.Context, userID string) ([]Platform, error) {
	platforms, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing platforms: %w", err)
	}
	if platforms == nil {
		platforms = []Platform{}
	}
	return platforms, nil
}

// Get fetches a platform by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Platform, error) {
	p, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("getting platform: %w", err)
	}
	return p, nil
}

// Connect connects (or reconnects) the user's account on a platform type.
func (s *Service) Connect(ctx context.Context, userID, platformType string, req ConnectRequest) (*Platform, error) {
	typ, ok := ParseType(strings.TrimSpace(platformType))
	if !ok {
		return nil, ErrInvalidType
	}

	p, err := s.repo.GetByType(ctx, userID, typ)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = &Platform{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      typ.DisplayName(),
			Type:      typ,
			CreatedAt: time.Now().UTC(),
		}
	case err != nil:
		return nil, fmt.Errorf("loading platform: %w", err)
	}

	p.Connected = true
	p.AccountName = strings.TrimSpace(req.AccountName)
	p.AccountID = strings.TrimSpace(req.AccountID)
	if req.IconURL != "" {
		p.IconURL = req.IconURL
	}

	if err := s.repo.Upsert(ctx, userID, p); err != nil {
		return nil, fmt.Errorf("saving platform: %w", err)
	}

	s.logActivity(ctx, userID, activity.TypePlatformConnected, fmt.Sprintf("connected %s", p.Name))
	return p, nil
}

// Disconnect marks a platform as disconnected, keeping it for history.
func (s *Service) Disconnect(ctx context.Context, userID, id string) (*Platform, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p.Connected = false
	if err := s.repo.Upsert(ctx, userID, p); err != nil {
		return nil, fmt.Errorf("saving platform: %w", err)
	}

	s.logActivity(ctx, userID, activity.TypePlatformDisconnected, fmt.Sprintf("disconnected %s", p.Name))
	return p, nil
}

func (s *Service) logActivity(ctx context.Context, userID string, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, userID, &activity.ActivityEntry{
		ActivityType: typ,
		Summary:      summary,
	}); err != nil && s.logger != nil {
		s.logger.Warn("failed to log platform activity", "error", err)
	}
}
