package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestContentRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewContentRepository(db)

	now := time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)
	item := &content.Item{
		ID:          "c1",
		Title:       "Spring launch",
		Description: "Teaser for the launch",
		ContentType: content.TypeVideo,
		Status:      content.StatusDraft,
		Platforms: []content.PlatformRef{
			{ID: "p2", PlatformID: "p2", Name: "Twitter"},
			{ID: "p1", PlatformID: "p1", Name: "Instagram"},
		},
		Tags:      []string{"launch", "spring"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, "user1", item))

	got, err := repo.Get(ctx, "user1", "c1")
	require.NoError(t, err)
	require.Equal(t, "Spring launch", got.Title)
	require.Equal(t, content.TypeVideo, got.ContentType)
	require.Equal(t, []string{"launch", "spring"}, got.Tags)
	require.Equal(t, []string{"p2", "p1"}, got.PlatformIDs())
	require.True(t, got.CreatedAt.Equal(now))
	require.Nil(t, got.PublishedAt)

	_, err = repo.Get(ctx, "user2", "c1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	published := now.Add(time.Hour)
	got.Status = content.StatusPublished
	got.PublishedAt = &published
	got.Platforms = []content.PlatformRef{{ID: "p1", PlatformID: "p1", Name: "Instagram"}}
	require.NoError(t, repo.Update(ctx, "user1", got))

	got, err = repo.Get(ctx, "user1", "c1")
	require.NoError(t, err)
	require.Equal(t, content.StatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	require.True(t, got.PublishedAt.Equal(published))
	require.Equal(t, []string{"p1"}, got.PlatformIDs())

	require.ErrorIs(t, repo.Update(ctx, "user2", got), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "user1", "c1"))
	require.ErrorIs(t, repo.Delete(ctx, "user1", "c1"), repository.ErrNotFound)
}

func TestContentRepository_ListFiltersAndPages(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewContentRepository(db)

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, spec := range []struct {
		id, title string
		typ       content.ContentType
		status    content.Status
		tags      []string
	}{
		{"c1", "Launch teaser", content.TypeVideo, content.StatusDraft, nil},
		{"c2", "Weekly roundup", content.TypeArticle, content.StatusScheduled, []string{"launch"}},
		{"c3", "Behind the scenes", content.TypeStory, content.StatusDraft, nil},
		{"c4", "100% organic", content.TypePost, content.StatusDraft, nil},
	} {
		at := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, "user1", &content.Item{
			ID: spec.id, Title: spec.title, ContentType: spec.typ, Status: spec.status,
			Tags: spec.tags, CreatedAt: at, UpdatedAt: at,
		}))
	}
	insertContent(t, db, "other", "user2", "Launch elsewhere")

	items, total, err := repo.List(ctx, "user1", content.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, "c4", items[0].ID, "newest first")

	items, total, err = repo.List(ctx, "user1", content.ListOptions{Query: "LAUNCH"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, items, 2)

	_, total, err = repo.List(ctx, "user1", content.ListOptions{Query: "%"})
	require.NoError(t, err)
	require.Equal(t, 1, total, "wildcards are matched literally")

	items, total, err = repo.List(ctx, "user1", content.ListOptions{Status: content.StatusDraft, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, items, 1)
	require.Equal(t, "c1", items[0].ID)

	items, _, err = repo.List(ctx, "user1", content.ListOptions{Type: content.TypeStory})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "c3", items[0].ID)
	require.NotNil(t, items[0].Platforms)
}

func TestContentRepository_DeleteCascadesSchedules(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertContent(t, db, "c1", "user1", "Doomed")

	scheds := NewScheduleRepository(db)
	now := time.Now().UTC()
	require.NoError(t, scheds.Create(ctx, "user1", &schedule.Schedule{
		ID: "s1", ContentID: "c1", ScheduledFor: now, TimeZone: "UTC",
		Status: schedule.StatusScheduled, PlatformIDs: []string{"p1"}, CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, NewContentRepository(db).Delete(ctx, "user1", "c1"))
	_, err := scheds.Get(ctx, "user1", "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContentRepository_Titles(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertContent(t, db, "c1", "user1", "First")
	insertContent(t, db, "c2", "user1", "Second")
	insertContent(t, db, "c3", "user2", "Hidden")

	titles, err := NewContentRepository(db).Titles(ctx, "user1", []string{"c1", "c2", "c3"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"c1": "First", "c2": "Second"}, titles)
}
