package analytics

import (
	"context"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
)

// Repository provides metric persistence and the aggregates built from it.
type Repository interface {
	Record(ctx context.Context, userID string, m *Metrics) error
	ForContent(ctx context.Context, userID, contentID string) ([]MetricRow, error)
	InRange(ctx context.Context, userID, startDay, endDay string) ([]MetricRow, error)
	ContentTypeCounts(ctx context.Context, userID, startDay, endDay string) (map[content.ContentType]int, error)
	PostsPerDay(ctx context.Context, userID, startDay, endDay string) (map[string]int, error)
}

// ContentRepository checks that metrics refer to existing content.
type ContentRepository interface {
	Get(ctx context.Context, userID, id string) (*content.Item, error)
}

// PlatformRepository resolves platforms for per-platform views.
type PlatformRepository interface {
	Get(ctx context.Context, userID, id string) (*platform.Platform, error)
}
