package transport

import (
	"fmt"
	"net/http"
	"time"
)

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	loc := LocationFromContext(r.Context())
	now := s.now().In(loc)

	year, err := queryInt(r, "year", now.Year())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	month, err := queryInt(r, "month", int(now.Month())-1)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if month < 0 || month > 11 {
		writeError(w, r, s.logger, fmt.Errorf("%w: month must be 0-11", ErrBadRequest))
		return
	}

	view, err := s.svc.Calendar.Month(r.Context(), s.userID(r), year, month, loc, now)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	loc := LocationFromContext(r.Context())
	date, err := s.queryDate(r, loc)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	view, err := s.svc.Calendar.Week(r.Context(), s.userID(r), date, loc, s.now())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	loc := LocationFromContext(r.Context())
	date, err := s.queryDate(r, loc)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	events, err := s.svc.Calendar.Day(r.Context(), s.userID(r), date.Year(), int(date.Month())-1, date.Day(), loc)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// queryDate reads the date parameter as YYYY-MM-DD in loc, defaulting to today.
func (s *Server) queryDate(r *http.Request, loc *time.Location) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return s.now().In(loc), nil
	}
	date, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	return date, nil
}
