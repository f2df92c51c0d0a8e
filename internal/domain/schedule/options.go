package schedule

import "time"

// ListOptions provides filtering options for listing schedules.
type ListOptions struct {
	Status    Status
	ContentID string
	From      *time.Time
	To        *time.Time // recurring schedules compare their series start
	Limit     int
	Offset    int
}
