package schedule

import (
	"context"
	"time"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/content"
)

// Repository provides persistence for schedules.
type Repository interface {
	Create(ctx context.Context, userID string, sched *Schedule) error
	Get(ctx context.Context, userID, id string) (*Schedule, error)
	Update(ctx context.Context, userID string, sched *Schedule) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts ListOptions) ([]Schedule, error)
	CountForContent(ctx context.Context, userID, contentID string) (int, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]Schedule, error)
}

// ContentRepository provides the content reads and status writes schedules need.
type ContentRepository interface {
	Get(ctx context.Context, userID, id string) (*content.Item, error)
	Update(ctx context.Context, userID string, item *content.Item) error
}

// ActivityRepository logs schedule activities.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}
