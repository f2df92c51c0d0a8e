package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/repository"
	"github.com/stretchr/testify/require"
)

func metric(contentID, platformID, day string, impressions, engagements int64) *analytics.Metrics {
	return &analytics.Metrics{
		ContentID:  contentID,
		PlatformID: platformID,
		Day:        day,
		Counters:   analytics.Counters{Impressions: impressions, Engagements: engagements},
	}
}

func TestMetricsRepository_RecordReplacesDay(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertContent(t, db, "c1", "user1", "Launch")
	require.NoError(t, NewPlatformRepository(db).Upsert(ctx, "user1", &platform.Platform{
		ID: "p1", Name: "Instagram", Type: platform.TypeInstagram, Connected: true,
	}))
	repo := NewMetricsRepository(db)

	require.NoError(t, repo.Record(ctx, "user1", metric("c1", "p1", "2025-04-17", 10, 1)))
	require.NoError(t, repo.Record(ctx, "user1", metric("c1", "p1", "2025-04-17", 50, 5)))
	require.NoError(t, repo.Record(ctx, "user1", metric("c1", "p9", "2025-04-18", 7, 0)))

	rows, err := repo.ForContent(ctx, "user1", "c1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(50), rows[0].Impressions)
	require.Equal(t, "instagram", rows[0].PlatformType)
	require.Equal(t, "Instagram", rows[0].PlatformName)
	require.Equal(t, content.TypePost, rows[0].ContentType)
	require.Equal(t, "", rows[1].PlatformType, "unknown platforms still report")

	rows, err = repo.InRange(ctx, "user1", "2025-04-18", "2025-04-30")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p9", rows[0].PlatformID)

	err = repo.Record(ctx, "user1", metric("missing", "p1", "2025-04-17", 1, 1))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestMetricsRepository_ContentTypeCounts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewContentRepository(db)

	for i, typ := range []content.ContentType{content.TypePost, content.TypePost, content.TypeReel} {
		at := time.Date(2025, 4, 10+i, 23, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, "user1", &content.Item{
			ID: string(rune('a' + i)), Title: "x", ContentType: typ, Status: content.StatusDraft,
			CreatedAt: at, UpdatedAt: at,
		}))
	}

	counts, err := NewMetricsRepository(db).ContentTypeCounts(ctx, "user1", "2025-04-10", "2025-04-11")
	require.NoError(t, err)
	require.Equal(t, map[content.ContentType]int{content.TypePost: 2}, counts)
}

func TestMetricsRepository_PostsPerDay(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	activities := NewActivityRepository(db)

	for _, at := range []time.Time{
		time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 17, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 17, 20, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, activities.Log(ctx, "user1", &activity.ActivityEntry{
			ActivityType: activity.TypeSchedulePosted, Summary: "posted", CreatedAt: at,
		}))
	}
	require.NoError(t, activities.Log(ctx, "user1", &activity.ActivityEntry{
		ActivityType: activity.TypeScheduleFailed, Summary: "failed",
		CreatedAt: time.Date(2025, 4, 17, 9, 0, 0, 0, time.UTC),
	}))

	counts, err := NewMetricsRepository(db).PostsPerDay(ctx, "user1", "2025-04-17", "2025-04-17")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"2025-04-17": 2}, counts)
}
