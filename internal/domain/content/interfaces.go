package content

import (
	"context"

	"github.com/rpggio/cadence/internal/domain/activity"
)

// Repository provides persistence for content items.
type Repository interface {
	Create(ctx context.Context, userID string, item *Item) error
	Get(ctx context.Context, userID, id string) (*Item, error)
	Update(ctx context.Context, userID string, item *Item) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts ListOptions) ([]Item, int, error)
}

// SearchRepository performs full-text search over content.
type SearchRepository interface {
	Search(ctx context.Context, userID, query string, opts SearchOptions) ([]SearchResult, error)
}

// ActivityRepository logs content activities.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}
