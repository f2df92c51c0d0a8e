package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// APIError is the payload of a failed tool call.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, content.ErrContentNotFound), errors.Is(err, schedule.ErrContentNotFound),
		errors.Is(err, analytics.ErrContentNotFound):
		return &APIError{Code: "CONTENT_NOT_FOUND", Message: "content not found", RecoveryHint: "Call list_content to find a valid id"}
	case errors.Is(err, schedule.ErrScheduleNotFound):
		return &APIError{Code: "SCHEDULE_NOT_FOUND", Message: "schedule not found", RecoveryHint: "Call list_schedules to find a valid id"}
	case errors.Is(err, platform.ErrPlatformNotFound), errors.Is(err, analytics.ErrPlatformNotFound):
		return &APIError{Code: "PLATFORM_NOT_FOUND", Message: "platform not found"}
	case errors.Is(err, schedule.ErrAlreadyPosted):
		return &APIError{Code: "ALREADY_POSTED", Message: "schedule already posted", RecoveryHint: "Create a new schedule instead"}
	case errors.Is(err, schedule.ErrInvalidTimeZone):
		return &APIError{Code: "INVALID_TIME_ZONE", Message: err.Error(), RecoveryHint: "Use an IANA name such as Europe/Berlin"}
	case errors.Is(err, schedule.ErrInvalidRecurrence):
		return &APIError{Code: "INVALID_RECURRENCE", Message: err.Error(), RecoveryHint: "Use an RRULE such as FREQ=WEEKLY;BYDAY=MO"}
	case errors.Is(err, schedule.ErrNoPlatforms):
		return &APIError{Code: "NO_PLATFORMS", Message: err.Error(), RecoveryHint: "Pass platformIds or attach platforms to the content"}
	case errors.Is(err, content.ErrInvalidInput), errors.Is(err, content.ErrInvalidType),
		errors.Is(err, content.ErrInvalidStatus), errors.Is(err, schedule.ErrInvalidInput),
		errors.Is(err, analytics.ErrInvalidInput), errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, errInvalidArgument):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}

var errInvalidArgument = errors.New("invalid argument")
