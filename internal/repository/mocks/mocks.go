package mocks

import (
	"context"
	"time"

	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/stretchr/testify/mock"
)

// ContentRepository is a mock for content.Repository.
type ContentRepository struct {
	mock.Mock
}

func (m *ContentRepository) Create(ctx context.Context, userID string, item *content.Item) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *ContentRepository) Get(ctx context.Context, userID, id string) (*content.Item, error) {
	args := m.Called(ctx, userID, id)
	if item, ok := args.Get(0).(*content.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentRepository) Update(ctx context.Context, userID string, item *content.Item) error {
	args := m.Called(ctx, userID, item)
	return args.Error(0)
}

func (m *ContentRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *ContentRepository) List(ctx context.Context, userID string, opts content.ListOptions) ([]content.Item, int, error) {
	args := m.Called(ctx, userID, opts)
	if items, ok := args.Get(0).([]content.Item); ok {
		return items, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// SearchRepository is a mock for content.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, userID, query string, opts content.SearchOptions) ([]content.SearchResult, error) {
	args := m.Called(ctx, userID, query, opts)
	if results, ok := args.Get(0).([]content.SearchResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}

// ScheduleRepository is a mock for schedule.Repository.
type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Create(ctx context.Context, userID string, sched *schedule.Schedule) error {
	args := m.Called(ctx, userID, sched)
	return args.Error(0)
}

func (m *ScheduleRepository) Get(ctx context.Context, userID, id string) (*schedule.Schedule, error) {
	args := m.Called(ctx, userID, id)
	if sched, ok := args.Get(0).(*schedule.Schedule); ok {
		return sched, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduleRepository) Update(ctx context.Context, userID string, sched *schedule.Schedule) error {
	args := m.Called(ctx, userID, sched)
	return args.Error(0)
}

func (m *ScheduleRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *ScheduleRepository) List(ctx context.Context, userID string, opts schedule.ListOptions) ([]schedule.Schedule, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]schedule.Schedule); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduleRepository) CountForContent(ctx context.Context, userID, contentID string) (int, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Int(0), args.Error(1)
}

func (m *ScheduleRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]schedule.Schedule, error) {
	args := m.Called(ctx, now, limit)
	if list, ok := args.Get(0).([]schedule.Schedule); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PlatformRepository is a mock for platform.Repository.
type PlatformRepository struct {
	mock.Mock
}

func (m *PlatformRepository) Get(ctx context.Context, userID, id string) (*platform.Platform, error) {
	args := m.Called(ctx, userID, id)
	if p, ok := args.Get(0).(*platform.Platform); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlatformRepository) GetByType(ctx context.Context, userID string, typ platform.Type) (*platform.Platform, error) {
	args := m.Called(ctx, userID, typ)
	if p, ok := args.Get(0).(*platform.Platform); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlatformRepository) List(ctx context.Context, userID string) ([]platform.Platform, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]platform.Platform); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlatformRepository) Upsert(ctx context.Context, userID string, p *platform.Platform) error {
	args := m.Called(ctx, userID, p)
	return args.Error(0)
}

// MetricsRepository is a mock for analytics.Repository.
type MetricsRepository struct {
	mock.Mock
}

func (m *MetricsRepository) Record(ctx context.Context, userID string, metrics *analytics.Metrics) error {
	args := m.Called(ctx, userID, metrics)
	return args.Error(0)
}

func (m *MetricsRepository) ForContent(ctx context.Context, userID, contentID string) ([]analytics.MetricRow, error) {
	args := m.Called(ctx, userID, contentID)
	if rows, ok := args.Get(0).([]analytics.MetricRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MetricsRepository) InRange(ctx context.Context, userID, startDay, endDay string) ([]analytics.MetricRow, error) {
	args := m.Called(ctx, userID, startDay, endDay)
	if rows, ok := args.Get(0).([]analytics.MetricRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MetricsRepository) ContentTypeCounts(ctx context.Context, userID, startDay, endDay string) (map[content.ContentType]int, error) {
	args := m.Called(ctx, userID, startDay, endDay)
	if counts, ok := args.Get(0).(map[content.ContentType]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MetricsRepository) PostsPerDay(ctx context.Context, userID, startDay, endDay string) (map[string]int, error) {
	args := m.Called(ctx, userID, startDay, endDay)
	if counts, ok := args.Get(0).(map[string]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, userID, opts)
	if entries, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// AccountRepository is a mock for account.Repository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) CreateUser(ctx context.Context, user *account.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AccountRepository) GetUser(ctx context.Context, id string) (*account.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*account.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*account.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) StoreToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenHash, userID, expiresAt)
	return args.Error(0)
}

func (m *AccountRepository) ResolveToken(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.String(0), args.Error(1)
}

func (m *AccountRepository) DeleteToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}
