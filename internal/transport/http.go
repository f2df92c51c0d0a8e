package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// DefaultLocalUserID owns all data when auth is disabled.
const DefaultLocalUserID = "local"

// Services contains the domain services behind the REST API.
type Services struct {
	Accounts  *account.Service
	Content   *content.Service
	Schedules *schedule.Service
	Platforms *platform.Service
	Analytics *analytics.Service
	Activity  *activity.Service
	Calendar  *calendar.Service
}

// Config configures the HTTP server.
type Config struct {
	Services        Services
	AuthEnabled     bool
	LocalUserID     string // used when auth is disabled
	CORSOrigins     []string
	DefaultLocation *time.Location
	MCP             http.Handler // mounted at /mcp when set
	Logger          *slog.Logger
	Now             func() time.Time
}

// Server serves the REST API.
type Server struct {
	svc         Services
	authEnabled bool
	localUserID string
	logger      *slog.Logger
	now         func() time.Time
}

// NewServer builds the chi router with every API route.
func NewServer(cfg Config) http.Handler {
	s := &Server{
		svc:         cfg.Services,
		authEnabled: cfg.AuthEnabled,
		localUserID: cfg.LocalUserID,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.localUserID == "" {
		s.localUserID = DefaultLocalUserID
	}

	var authenticate func(http.Handler) http.Handler
	if cfg.AuthEnabled {
		authenticate = AuthMiddleware(cfg.Services.Accounts)
	} else {
		authenticate = StaticUserMiddleware(s.localUserID)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", TimezoneHeader, "Mcp-Session-Id"},
			ExposedHeaders:   []string{"Mcp-Session-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(LocationMiddleware(cfg.DefaultLocation))

		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/logout", s.handleLogout)

		r.Route("/content", func(r chi.Router) {
			r.Get("/", s.handleListContent)
			r.Post("/", s.handleCreateContent)
			r.Get("/search", s.handleSearchContent)
			r.Get("/{id}", s.handleGetContent)
			r.Put("/{id}", s.handleUpdateContent)
			r.Delete("/{id}", s.handleDeleteContent)
			r.Post("/{id}/schedule", s.handleScheduleContent)
			r.Get("/{id}/analytics", s.handleContentAnalytics)
			r.Post("/{id}/analytics", s.handleRecordMetrics)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", s.handleListSchedules)
			r.Get("/date-range", s.handleScheduleRange)
			r.Get("/calendar.ics", s.handleCalendarFeed)
			r.Put("/{id}", s.handleReschedule)
			r.Delete("/{id}", s.handleCancelSchedule)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/month", s.handleMonth)
			r.Get("/week", s.handleWeek)
			r.Get("/day", s.handleDay)
		})

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/", s.handleListPlatforms)
			r.Post("/{type}/connect", s.handleConnectPlatform)
			r.Delete("/{id}", s.handleDisconnectPlatform)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/overall", s.handleOverallAnalytics)
			r.Get("/platform/{id}", s.handlePlatformAnalytics)
			r.Get("/content-types", s.handleContentTypeAnalytics)
		})

		r.Get("/activity", s.handleActivity)
	})

	return r
}

// requestLogger logs each request at debug level once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) userID(r *http.Request) string {
	userID, _ := UserFromContext(r.Context())
	return userID
}
