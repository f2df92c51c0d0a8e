package content

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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service handles content library operations.
type Service struct {
	repo       Repository
	search     SearchRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new content service.
func NewService(repo Repository, search SearchRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, search: search, activities: activities, logger: logger}
}

// CreateRequest defines content creation inputs.
type CreateRequest struct {
	Title       string
	Description string
	ContentType ContentType
	Status      Status
	Platforms   []PlatformRef
	Tags        []string
}

// UpdateRequest describes a partial content update. Nil fields are left as is.
type UpdateRequest struct {
	ID          string
	Title       *string
	Description *string
	ContentType *ContentType
	Status      *Status
	Platforms   []PlatformRef
	Tags        []string
}

// ListRequest describes a paginated, filtered listing.
type ListRequest struct {
	Status   Status
	Type     ContentType
	Query    string
	Page     int
	PageSize int
}

// Create creates a new content item. Type defaults to post and status to draft.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Item, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = TypePost
	}
	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	now := time.Now().UTC()
	item := &Item{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ContentType: contentType,
		Status:      status,
		Platforms:   normalizePlatforms(req.Platforms),
		Tags:        NormalizeTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == StatusPublished {
		item.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("creating content: %w", err)
	}

	s.logActivity(ctx, userID, item.ID, activity.TypeContentCreated, fmt.Sprintf("created content %q", item.Title))
	return item, nil
}

// Get fetches a content item by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Item, error) {
	item, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("getting content: %w", err)
	}
	return item, nil
}

// List returns one page of content matching the filters, newest first.
func (s *Service) List(ctx context.Context, userID string, req ListRequest) (*Page, error) {
	if req.Status != "" && !ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.Type != "" && !ValidType(req.Type) {
		return nil, ErrInvalidType
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.repo.List(ctx, userID, ListOptions{
		Status: req.Status,
		Type:   req.Type,
		Query:  strings.TrimSpace(req.Query),
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	if items == nil {
		items = []Item{}
	}

	return &Page{
		Items:      items,
		Page:       page,
		TotalPages: (total + size - 1) / size,
		TotalItems: total,
	}, nil
}

// Search runs a ranked full-text query over titles, descriptions and tags.
func (s *Service) Search(ctx context.Context, userID, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	for _, st := range opts.Statuses {
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
	}
	results, err := s.search.Search(ctx, userID, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching content: %w", err)
	}
	return results, nil
}

// Update applies a partial update to a content item.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*Item, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.ContentType != nil {
		updated.ContentType = *req.ContentType
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Platforms != nil {
		updated.Platforms = normalizePlatforms(req.Platforms)
	}
	if req.Tags != nil {
		updated.Tags = NormalizeTags(req.Tags)
	}
	updated.UpdatedAt = time.Now().UTC()
	if updated.Status == StatusPublished && updated.PublishedAt == nil {
		publishedAt := updated.UpdatedAt
		updated.PublishedAt = &publishedAt
	}

	if err := s.repo.Update(ctx, userID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("updating content: %w", err)
	}

	s.logActivity(ctx, userID, updated.ID, activity.TypeContentUpdated, fmt.Sprintf("updated content %q", updated.Title))
	return &updated, nil
}

// SetStatus moves a content item to the given status, stamping publishedAt on publish.
func (s *Service) SetStatus(ctx context.Context, userID, id string, status Status, at time.Time) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if item.Status == status {
		return nil
	}
	item.Status = status
	item.UpdatedAt = at.UTC()
	if status == StatusPublished {
		publishedAt := at.UTC()
		item.PublishedAt = &publishedAt
	}
	if err := s.repo.Update(ctx, userID, item); err != nil {
		return fmt.Errorf("updating content status: %w", err)
	}
	return nil
}

// Delete removes a content item and, through the store, its schedules and metrics.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("deleting content: %w", err)
	}

	s.logActivity(ctx, userID, id, activity.TypeContentDeleted, fmt.Sprintf("deleted content %s", id))
	return nil
}

func (s *Service) logActivity(ctx context.Context, userID, contentID string, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, userID, &activity.ActivityEntry{
		ContentID:    &contentID,
		ActivityType: typ,
		Summary:      summary,
	}); err != nil && s.logger != nil {
		s.logger.Warn("failed to log content activity", "content_id", contentID, "error", err)
	}
}
