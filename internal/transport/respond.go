package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/repository"
)

// ErrBadRequest indicates a malformed request body or query parameter.
var ErrBadRequest = errors.New("bad request")

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err to a status code. Server errors are logged and
// reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		msg = "internal server error"
	}
	if status == http.StatusUnauthorized {
		msg = "unauthorized"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

// StatusFor maps domain and storage errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, content.ErrContentNotFound),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrContentNotFound),
		errors.Is(err, platform.ErrPlatformNotFound),
		errors.Is(err, analytics.ErrContentNotFound),
		errors.Is(err, analytics.ErrPlatformNotFound),
		errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, content.ErrInvalidInput),
		errors.Is(err, content.ErrInvalidType),
		errors.Is(err, content.ErrInvalidStatus),
		errors.Is(err, schedule.ErrInvalidInput),
		errors.Is(err, schedule.ErrInvalidTimeZone),
		errors.Is(err, schedule.ErrInvalidRecurrence),
		errors.Is(err, schedule.ErrNoPlatforms),
		errors.Is(err, platform.ErrInvalidType),
		errors.Is(err, analytics.ErrInvalidInput),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, account.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, account.ErrUnauthorized),
		errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, schedule.ErrAlreadyPosted),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	return nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, nil
}

func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseInstant accepts RFC3339 or a bare YYYY-MM-DD date in loc. endOfDay
// moves bare dates to their last instant.
func parseInstant(raw string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrBadRequest, raw)
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}
