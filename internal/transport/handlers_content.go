package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

type contentPayload struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	ContentType *content.ContentType  `json:"contentType"`
	Status      *content.Status       `json:"status"`
	Platforms   []content.PlatformRef `json:"platforms"`
	Tags        []string              `json:"tags"`
}

type schedulePayload struct {
	ScheduledFor string   `json:"scheduledFor"`
	TimeZone     string   `json:"timeZone"`
	PlatformIDs  []string `json:"platformIds"`
	Recurrence   string   `json:"recurrence"`
}

type metricsPayload struct {
	PlatformID string `json:"platformId"`
	Date       string `json:"date"`
	analytics.Counters
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	pageSize, err := queryInt(r, "pageSize", 0)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	q := r.URL.Query()
	result, err := s.svc.Content.List(r.Context(), s.userID(r), content.ListRequest{
		Status:   content.Status(q.Get("status")),
		Type:     content.ContentType(q.Get("type")),
		Query:    q.Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var body contentPayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	req := content.CreateRequest{Platforms: body.Platforms, Tags: body.Tags}
	if body.Title != nil {
		req.Title = *body.Title
	}
	if body.Description != nil {
		req.Description = *body.Description
	}
	if body.ContentType != nil {
		req.ContentType = *body.ContentType
	}
	if body.Status != nil {
		req.Status = *body.Status
	}
	item, err := s.svc.Content.Create(r.Context(), s.userID(r), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleSearchContent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var statuses []content.Status
	for _, st := range queryList(r, "status") {
		statuses = append(statuses, content.Status(st))
	}
	results, err := s.svc.Content.Search(r.Context(), s.userID(r), r.URL.Query().Get("q"), content.SearchOptions{
		Statuses: statuses,
		Limit:    limit,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	item, err := s.svc.Content.Get(r.Context(), s.userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	var body contentPayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	item, err := s.svc.Content.Update(r.Context(), s.userID(r), content.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Title:       body.Title,
		Description: body.Description,
		ContentType: body.ContentType,
		Status:      body.Status,
		Platforms:   body.Platforms,
		Tags:        body.Tags,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Content.Delete(r.Context(), s.userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScheduleContent(w http.ResponseWriter, r *http.Request) {
	var body schedulePayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	at, err := schedule.ParseTime(body.ScheduledFor, body.TimeZone)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sched, err := s.svc.Schedules.ScheduleContent(r.Context(), s.userID(r), schedule.CreateRequest{
		ContentID:    chi.URLParam(r, "id"),
		ScheduledFor: at,
		TimeZone:     body.TimeZone,
		PlatformIDs:  body.PlatformIDs,
		Recurrence:   body.Recurrence,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

func (s *Server) handleContentAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Analytics.ForContent(r.Context(), s.userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecordMetrics(w http.ResponseWriter, r *http.Request) {
	var body metricsPayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Analytics.RecordMetrics(r.Context(), s.userID(r), chi.URLParam(r, "id"), analytics.RecordRequest{
		PlatformID: body.PlatformID,
		Date:       body.Date,
		Counters:   body.Counters,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
