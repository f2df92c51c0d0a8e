package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	contentID := "c1"
	entry1 := &activity.ActivityEntry{
		ContentID:    &contentID,
		ActivityType: activity.TypeContentCreated,
		Summary:      "Created content",
		Details:      `{"id":"c1"}`,
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypePlatformConnected,
		Summary:      "Connected Instagram",
	}

	require.NoError(t, repo.Log(ctx, "user1", entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, "user1", entry2))
	require.NotZero(t, entry1.ID)
	require.Equal(t, "user1", entry1.UserID)

	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.NotNil(t, entries[1].ContentID)
	require.Equal(t, "c1", *entries[1].ContentID)
	require.Nil(t, entries[0].ContentID)
}

func TestActivityRepository_FiltersAndUserIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	contentID := "c1"
	scheduleID := "s1"
	require.NoError(t, repo.Log(ctx, "user1", &activity.ActivityEntry{
		ContentID:    &contentID,
		ScheduleID:   &scheduleID,
		ActivityType: activity.TypeContentScheduled,
		Summary:      "Scheduled",
	}))
	require.NoError(t, repo.Log(ctx, "user1", &activity.ActivityEntry{
		ActivityType: activity.TypePlatformConnected,
		Summary:      "Connected",
	}))
	require.NoError(t, repo.Log(ctx, "user2", &activity.ActivityEntry{
		ContentID:    &contentID,
		ActivityType: activity.TypeContentScheduled,
		Summary:      "Other user",
	}))

	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{ScheduleID: &scheduleID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Scheduled", entries[0].Summary)

	typ := activity.TypePlatformConnected
	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{ActivityType: &typ})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{ContentID: &contentID})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Scheduled", entries[0].Summary)
}
