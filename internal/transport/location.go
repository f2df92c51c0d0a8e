package transport

import (
	"context"
	"net/http"
	"time"
)

// TimezoneHeader lets clients pick the zone calendar views are rendered in.
const TimezoneHeader = "X-Timezone"

type locationKey struct{}

// LocationFromContext returns the viewer's location, defaulting to UTC.
func LocationFromContext(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(locationKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}

// LocationMiddleware resolves the viewer's location from the tz query
// parameter, then the X-Timezone header, then fallback. Unknown zone names
// are rejected with 400.
func LocationMiddleware(fallback *time.Location) func(http.Handler) http.Handler {
	if fallback == nil {
		fallback = time.UTC
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := fallback
			name := r.URL.Query().Get("tz")
			if name == "" {
				name = r.Header.Get(TimezoneHeader)
			}
			if name != "" {
				parsed, err := time.LoadLocation(name)
				if err != nil {
					writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown time zone " + name})
					return
				}
				loc = parsed
			}
			ctx := context.WithValue(r.Context(), locationKey{}, loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
