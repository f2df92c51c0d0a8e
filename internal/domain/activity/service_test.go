package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	userID := "user1"

	repo := &mocks.ActivityRepository{}
	contentID := "c1"
	entry := &activity.ActivityEntry{
		ContentID:    &contentID,
		ActivityType: activity.TypeContentCreated,
		Summary:      "created",
	}

	repo.On("Log", ctx, userID, entry).Return(nil)
	repo.On("List", ctx, userID, activity.ListActivityOptions{Limit: 50}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, userID, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, userID, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsEmptyEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "user1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "user1", &activity.ActivityEntry{}), activity.ErrInvalidInput)
}

func TestActivityService_ListWrapsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	boom := errors.New("boom")
	repo.On("List", ctx, "user1", mock.Anything).Return(nil, boom)

	svc := activity.NewService(repo, nil)
	_, err := svc.GetRecentActivity(ctx, "user1", activity.ListActivityOptions{Limit: 5})
	require.ErrorIs(t, err, boom)
}
