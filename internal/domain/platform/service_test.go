package platform_test

import (
	"context"
	"testing"

	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/repository"
	"github.com/rpggio/cadence/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlatformService_ConnectCreates(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlatformRepository{}
	repo.On("GetByType", ctx, "user1", platform.TypeLinkedIn).Return(nil, repository.ErrNotFound)
	repo.On("Upsert", ctx, "user1", mock.AnythingOfType("*platform.Platform")).Return(nil)

	svc := platform.NewService(repo, nil, nil)
	p, err := svc.Connect(ctx, "user1", "LinkedIn", platform.ConnectRequest{AccountName: " acme ", AccountID: "42"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "LinkedIn", p.Name)
	require.Equal(t, platform.TypeLinkedIn, p.Type)
	require.True(t, p.Connected)
	require.Equal(t, "acme", p.AccountName)
}

func TestPlatformService_ConnectReconnectsExisting(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlatformRepository{}
	existing := &platform.Platform{ID: "p1", Name: "Twitter", Type: platform.TypeTwitter, IconURL: "icon.png"}
	repo.On("GetByType", ctx, "user1", platform.TypeTwitter).Return(existing, nil)
	repo.On("Upsert", ctx, "user1", existing).Return(nil)

	svc := platform.NewService(repo, nil, nil)
	p, err := svc.Connect(ctx, "user1", "twitter", platform.ConnectRequest{AccountName: "acme"})
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.True(t, p.Connected)
	require.Equal(t, "icon.png", p.IconURL)
}

func TestPlatformService_ConnectInvalidType(t *testing.T) {
	svc := platform.NewService(&mocks.PlatformRepository{}, nil, nil)
	_, err := svc.Connect(context.Background(), "user1", "myspace", platform.ConnectRequest{})
	require.ErrorIs(t, err, platform.ErrInvalidType)
}

func TestPlatformService_Disconnect(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlatformRepository{}
	repo.On("Get", ctx, "user1", "p1").Return(&platform.Platform{ID: "p1", Connected: true}, nil)
	repo.On("Upsert", ctx, "user1", mock.MatchedBy(func(p *platform.Platform) bool { return !p.Connected })).Return(nil)
	repo.On("Get", ctx, "user1", "missing").Return(nil, repository.ErrNotFound)

	svc := platform.NewService(repo, nil, nil)
	p, err := svc.Disconnect(ctx, "user1", "p1")
	require.NoError(t, err)
	require.False(t, p.Connected)

	_, err = svc.Disconnect(ctx, "user1", "missing")
	require.ErrorIs(t, err, platform.ErrPlatformNotFound)
}

func TestPlatformService_ListNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlatformRepository{}
	repo.On("List", ctx, "user1").Return(nil, nil)

	svc := platform.NewService(repo, nil, nil)
	list, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}
