package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/platform"
)

type connectPayload struct {
	AccountName string `json:"accountName"`
	AccountID   string `json:"accountId"`
	IconURL     string `json:"iconUrl"`
}

func (s *Server) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.svc.Platforms.List(r.Context(), s.userID(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, platforms)
}

func (s *Server) handleConnectPlatform(w http.ResponseWriter, r *http.Request) {
	var body connectPayload
	if err := decodeJSON(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, s.logger, err)
		return
	}
	p, err := s.svc.Platforms.Connect(r.Context(), s.userID(r), chi.URLParam(r, "type"), platform.ConnectRequest{
		AccountName: body.AccountName,
		AccountID:   body.AccountID,
		IconURL:     body.IconURL,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDisconnectPlatform(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Platforms.Disconnect(r.Context(), s.userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) analyticsRange(r *http.Request) (analytics.Range, error) {
	q := r.URL.Query()
	return analytics.ResolveRange(q.Get("startDate"), q.Get("endDate"), s.now())
}

func (s *Server) handleOverallAnalytics(w http.ResponseWriter, r *http.Request) {
	rng, err := s.analyticsRange(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	result, err := s.svc.Analytics.Overall(r.Context(), s.userID(r), rng)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePlatformAnalytics(w http.ResponseWriter, r *http.Request) {
	rng, err := s.analyticsRange(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	result, err := s.svc.Analytics.Platform(r.Context(), s.userID(r), chi.URLParam(r, "id"), rng)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleContentTypeAnalytics(w http.ResponseWriter, r *http.Request) {
	rng, err := s.analyticsRange(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	result, err := s.svc.Analytics.ContentTypes(r.Context(), s.userID(r), rng)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	opts := activity.ListActivityOptions{Limit: limit, Offset: offset}
	q := r.URL.Query()
	if v := q.Get("contentId"); v != "" {
		opts.ContentID = &v
	}
	if v := q.Get("scheduleId"); v != "" {
		opts.ScheduleID = &v
	}
	if v := q.Get("type"); v != "" {
		typ := activity.ActivityType(v)
		opts.ActivityType = &typ
	}

	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), s.userID(r), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
