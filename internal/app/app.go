// Package app wires storage, domain services and their consumers together.
package app

import (
	"log/slog"
	"time"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/mcp"
	"github.com/rpggio/cadence/internal/publisher"
	"github.com/rpggio/cadence/internal/sqlite"
	"github.com/rpggio/cadence/internal/transport"
)

// Options configures service construction.
type Options struct {
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// App holds the wired services over one database.
type App struct {
	DB       *sqlite.DB
	Accounts *sqlite.AccountRepository
	Services transport.Services
	logger   *slog.Logger
}

// New builds every repository and service on db.
func New(db *sqlite.DB, opts Options) *App {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = account.DefaultTokenTTL
	}
	logger := opts.Logger

	accountRepo := sqlite.NewAccountRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	contentRepo := sqlite.NewContentRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)
	scheduleRepo := sqlite.NewScheduleRepository(db)
	platformRepo := sqlite.NewPlatformRepository(db)
	metricsRepo := sqlite.NewMetricsRepository(db)

	scheduleSvc := schedule.NewService(scheduleRepo, contentRepo, activityRepo, logger)

	return &App{
		DB:       db,
		Accounts: accountRepo,
		Services: transport.Services{
			Accounts:  account.NewService(accountRepo, opts.TokenTTL, logger),
			Content:   content.NewService(contentRepo, searchRepo, activityRepo, logger),
			Schedules: scheduleSvc,
			Platforms: platform.NewService(platformRepo, activityRepo, logger),
			Analytics: analytics.NewService(metricsRepo, contentRepo, platformRepo, logger),
			Activity:  activity.NewService(activityRepo, logger),
			Calendar:  calendar.NewService(scheduleSvc, contentRepo),
		},
		logger: logger,
	}
}

// MCPServices exposes the services the MCP tools use.
func (a *App) MCPServices() mcp.Services {
	return mcp.Services{
		Content:   a.Services.Content,
		Schedules: a.Services.Schedules,
		Calendar:  a.Services.Calendar,
		Analytics: a.Services.Analytics,
	}
}

// NewPublisher builds a publisher that checks platform connectivity before
// marking schedules posted.
func (a *App) NewPublisher(spec string) *publisher.Publisher {
	return publisher.New(
		a.Services.Schedules,
		publisher.NewPlatformDispatcher(a.Services.Platforms),
		publisher.Options{Spec: spec, Logger: a.logger},
	)
}
