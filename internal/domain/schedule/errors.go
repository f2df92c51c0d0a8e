package schedule

import "errors"

var (
	// ErrScheduleNotFound indicates the schedule doesn't exist.
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrContentNotFound indicates the scheduled content doesn't exist.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidInput indicates invalid schedule input.
	ErrInvalidInput = errors.New("invalid schedule input")
	// ErrInvalidTimeZone indicates the time zone is not a known IANA name.
	ErrInvalidTimeZone = errors.New("invalid time zone")
	// ErrInvalidRecurrence indicates the recurrence is not a valid RRULE.
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
	// ErrNoPlatforms indicates a schedule without target platforms.
	ErrNoPlatforms = errors.New("at least one platform is required")
	// ErrAlreadyPosted indicates the schedule can no longer change.
	ErrAlreadyPosted = errors.New("schedule already posted")
)
