package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// ContentService defines content operations needed by MCP.
type ContentService interface {
	List(ctx context.Context, userID string, req content.ListRequest) (*content.Page, error)
	Create(ctx context.Context, userID string, req content.CreateRequest) (*content.Item, error)
}

// ScheduleService defines schedule operations needed by MCP.
type ScheduleService interface {
	ScheduleContent(ctx context.Context, userID string, req schedule.CreateRequest) (*schedule.Schedule, error)
	Get(ctx context.Context, userID, id string) (*schedule.Schedule, error)
	List(ctx context.Context, userID string, opts schedule.ListOptions) ([]schedule.Schedule, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]schedule.Schedule, error)
	Reschedule(ctx context.Context, userID, id string, scheduledFor time.Time) (*schedule.Schedule, error)
	Cancel(ctx context.Context, userID, id string) error
}

// CalendarService defines calendar views needed by MCP.
type CalendarService interface {
	Month(ctx context.Context, userID string, year, month int, loc *time.Location, now time.Time) (*calendar.MonthView, error)
	Day(ctx context.Context, userID string, year, month, day int, loc *time.Location) ([]calendar.CalendarEvent, error)
}

// AnalyticsService defines analytics operations needed by MCP.
type AnalyticsService interface {
	Overall(ctx context.Context, userID string, r analytics.Range) (*analytics.OverallAnalytics, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Content   ContentService
	Schedules ScheduleService
	Calendar  CalendarService
	Analytics AnalyticsService
}

// Config contains server configuration.
type Config struct {
	Services        Services
	Resolver        UserResolver
	AuthEnabled     bool
	TransportMode   string // "stdio" or "http"
	LocalUserID     string // user for stdio and auth-disabled calls
	DefaultLocation *time.Location
	Logger          *slog.Logger
	Now             func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "cadence",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	localUser := cfg.LocalUserID
	if localUser == "" {
		localUser = "local"
	}
	// Stdio is a local, single-user transport.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(localUser))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	loc := cfg.DefaultLocation
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	registerTools(server, &tools{svc: cfg.Services, loc: loc, now: now, logger: cfg.Logger})

	return server
}
