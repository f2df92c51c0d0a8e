package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeContentCreated       ActivityType = "content_created"
	TypeContentUpdated       ActivityType = "content_updated"
	TypeContentDeleted       ActivityType = "content_deleted"
	TypeContentScheduled     ActivityType = "content_scheduled"
	TypeScheduleRescheduled  ActivityType = "schedule_rescheduled"
	TypeScheduleCancelled    ActivityType = "schedule_cancelled"
	TypeSchedulePosted       ActivityType = "schedule_posted"
	TypeScheduleFailed       ActivityType = "schedule_failed"
	TypePlatformConnected    ActivityType = "platform_connected"
	TypePlatformDisconnected ActivityType = "platform_disconnected"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"userId"`
	ContentID    *string      `json:"contentId,omitempty"`
	ScheduleID   *string      `json:"scheduleId,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"createdAt"`
}
