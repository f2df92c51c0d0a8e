package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ContentID    *string
	ScheduleID   *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
