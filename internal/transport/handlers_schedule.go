package transport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/ical"
)

type reschedulePayload struct {
	ScheduledFor string `json:"scheduledFor"`
	TimeZone     string `json:"timeZone"`
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scheds, err := s.svc.Schedules.List(r.Context(), s.userID(r), schedule.ListOptions{
		Status:    schedule.Status(q.Get("status")),
		ContentID: q.Get("contentId"),
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scheds)
}

func (s *Server) handleScheduleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		writeError(w, r, s.logger, fmt.Errorf("%w: startDate and endDate are required", ErrBadRequest))
		return
	}
	loc := LocationFromContext(r.Context())
	from, err := parseInstant(q.Get("startDate"), loc, false)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	to, err := parseInstant(q.Get("endDate"), loc, true)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	scheds, err := s.svc.Schedules.ListRange(r.Context(), s.userID(r), from, to)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scheds)
}

func (s *Server) handleCalendarFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := s.userID(r)

	scheds, err := s.svc.Schedules.List(ctx, userID, schedule.ListOptions{})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	titles, err := s.svc.Calendar.Titles(ctx, userID, scheds)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	platforms, err := s.svc.Platforms.List(ctx, userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	names := make(map[string]string, len(platforms))
	for _, p := range platforms {
		names[p.ID] = p.Name
	}

	body := ical.Export(scheds, ical.Feed{
		Name:          "cadence",
		Titles:        titles,
		PlatformNames: names,
		Now:           s.now(),
	})
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleReschedule(w http.ResponseWriter, r *http.Request) {
	var body reschedulePayload
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	id := chi.URLParam(r, "id")
	tz := body.TimeZone
	if tz == "" {
		if current, err := s.svc.Schedules.Get(r.Context(), s.userID(r), id); err == nil {
			tz = current.TimeZone
		}
	}
	at, err := schedule.ParseTime(body.ScheduledFor, tz)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sched, err := s.svc.Schedules.Reschedule(r.Context(), s.userID(r), id, at)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleCancelSchedule(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Schedules.Cancel(r.Context(), s.userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
