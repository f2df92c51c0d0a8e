package platform

import (
	"context"

	"github.com/rpggio/cadence/internal/domain/activity"
)

// Repository provides persistence for platforms.
type Repository interface {
	Get(ctx context.Context, userID, id string) (*Platform, error)
	GetByType(ctx context.Context, userID string, typ Type) (*Platform, error)
	List(ctx context.Context, userID string) ([]Platform, error)
	Upsert(ctx context.Context, userID string, p *Platform) error
}

// ActivityRepository logs platform activities.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}
