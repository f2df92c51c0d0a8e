package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

type tools struct {
	svc    Services
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

type listContentInput struct {
	Status   string `json:"status,omitempty" jsonschema:"filter by status: draft, scheduled, published or archived"`
	Type     string `json:"type,omitempty" jsonschema:"filter by content type"`
	Query    string `json:"query,omitempty" jsonschema:"substring matched against title, description and tags"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number"`
	PageSize int    `json:"pageSize,omitempty" jsonschema:"items per page"`
}

type createContentInput struct {
	Title       string                `json:"title" jsonschema:"content title"`
	Description string                `json:"description,omitempty" jsonschema:"body or caption"`
	ContentType string                `json:"contentType,omitempty" jsonschema:"post, article, image, video, story or reel (default post)"`
	Status      string                `json:"status,omitempty" jsonschema:"initial status (default draft)"`
	Platforms   []content.PlatformRef `json:"platforms,omitempty" jsonschema:"target platforms"`
	Tags        []string              `json:"tags,omitempty" jsonschema:"free-form tags"`
}

type scheduleContentInput struct {
	ContentID    string   `json:"contentId" jsonschema:"content to schedule"`
	ScheduledFor string   `json:"scheduledFor" jsonschema:"RFC3339 instant or wall clock time in timeZone"`
	TimeZone     string   `json:"timeZone,omitempty" jsonschema:"IANA time zone (default UTC)"`
	PlatformIDs  []string `json:"platformIds,omitempty" jsonschema:"platforms to publish to (default: the content's platforms)"`
	Recurrence   string   `json:"recurrence,omitempty" jsonschema:"RRULE for repeating slots"`
}

type listSchedulesInput struct {
	Status    string `json:"status,omitempty" jsonschema:"filter by status: scheduled, posted or failed"`
	ContentID string `json:"contentId,omitempty" jsonschema:"filter by content"`
	StartDate string `json:"startDate,omitempty" jsonschema:"YYYY-MM-DD lower bound, requires endDate"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"YYYY-MM-DD upper bound, requires startDate"`
}

type rescheduleInput struct {
	ID           string `json:"id" jsonschema:"schedule id"`
	ScheduledFor string `json:"scheduledFor" jsonschema:"new RFC3339 instant or wall clock time in timeZone"`
	TimeZone     string `json:"timeZone,omitempty" jsonschema:"zone for wall clock times (default: the schedule's zone)"`
}

type cancelScheduleInput struct {
	ID string `json:"id" jsonschema:"schedule id"`
}

type monthGridInput struct {
	Year     int    `json:"year,omitempty" jsonschema:"four-digit year (default current)"`
	Month    *int   `json:"month,omitempty" jsonschema:"zero-based month, 0 is January (default current)"`
	TimeZone string `json:"timeZone,omitempty" jsonschema:"IANA zone events are shown in"`
}

type dayEventsInput struct {
	Date     string `json:"date,omitempty" jsonschema:"YYYY-MM-DD (default today)"`
	TimeZone string `json:"timeZone,omitempty" jsonschema:"IANA zone events are shown in"`
}

type overallAnalyticsInput struct {
	StartDate string `json:"startDate,omitempty" jsonschema:"YYYY-MM-DD, inclusive"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"YYYY-MM-DD, inclusive"`
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_content",
		Description: "List content items, newest first, with optional filters and pagination",
	}, t.listContent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_content",
		Description: "Create a content item (defaults to a draft post)",
	}, t.createContent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "schedule_content",
		Description: "Schedule a content item for publishing on one or more platforms",
	}, t.scheduleContent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_schedules",
		Description: "List schedules, optionally within a date range",
	}, t.listSchedules)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reschedule",
		Description: "Move a schedule to a new time and re-arm it",
	}, t.reschedule)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel_schedule",
		Description: "Delete a schedule",
	}, t.cancelSchedule)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_month_grid",
		Description: "Render the 42-cell month grid with the events on each day",
	}, t.monthGrid)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_day_events",
		Description: "List the events scheduled on one day",
	}, t.dayEvents)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_overall_analytics",
		Description: "Summarize impressions, engagement and posting activity over a date range",
	}, t.overallAnalytics)
}

func (t *tools) listContent(ctx context.Context, _ *sdkmcp.CallToolRequest, in listContentInput) (*sdkmcp.CallToolResult, any, error) {
	page, err := t.svc.Content.List(ctx, getUserID(ctx), content.ListRequest{
		Status:   content.Status(in.Status),
		Type:     content.ContentType(in.Type),
		Query:    in.Query,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	return t.respond(page, err)
}

func (t *tools) createContent(ctx context.Context, _ *sdkmcp.CallToolRequest, in createContentInput) (*sdkmcp.CallToolResult, any, error) {
	item, err := t.svc.Content.Create(ctx, getUserID(ctx), content.CreateRequest{
		Title:       in.Title,
		Description: in.Description,
		ContentType: content.ContentType(in.ContentType),
		Status:      content.Status(in.Status),
		Platforms:   in.Platforms,
		Tags:        in.Tags,
	})
	return t.respond(item, err)
}

func (t *tools) scheduleContent(ctx context.Context, _ *sdkmcp.CallToolRequest, in scheduleContentInput) (*sdkmcp.CallToolResult, any, error) {
	at, err := schedule.ParseTime(in.ScheduledFor, in.TimeZone)
	if err != nil {
		return t.respond(nil, err)
	}
	sched, err := t.svc.Schedules.ScheduleContent(ctx, getUserID(ctx), schedule.CreateRequest{
		ContentID:    in.ContentID,
		ScheduledFor: at,
		TimeZone:     in.TimeZone,
		PlatformIDs:  in.PlatformIDs,
		Recurrence:   in.Recurrence,
	})
	return t.respond(sched, err)
}

func (t *tools) listSchedules(ctx context.Context, _ *sdkmcp.CallToolRequest, in listSchedulesInput) (*sdkmcp.CallToolResult, any, error) {
	userID := getUserID(ctx)
	if in.StartDate == "" && in.EndDate == "" {
		scheds, err := t.svc.Schedules.List(ctx, userID, schedule.ListOptions{
			Status:    schedule.Status(in.Status),
			ContentID: in.ContentID,
		})
		return t.respond(scheds, err)
	}
	if in.StartDate == "" || in.EndDate == "" {
		return t.respond(nil, fmt.Errorf("%w: startDate and endDate go together", errInvalidArgument))
	}

	from, err := time.ParseInLocation(time.DateOnly, in.StartDate, t.loc)
	if err != nil {
		return t.respond(nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD", errInvalidArgument))
	}
	to, err := time.ParseInLocation(time.DateOnly, in.EndDate, t.loc)
	if err != nil {
		return t.respond(nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD", errInvalidArgument))
	}
	scheds, err := t.svc.Schedules.ListRange(ctx, userID, from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return t.respond(nil, err)
	}
	filtered := scheds[:0]
	for _, s := range scheds {
		if in.Status != "" && string(s.Status) != in.Status {
			continue
		}
		if in.ContentID != "" && s.ContentID != in.ContentID {
			continue
		}
		filtered = append(filtered, s)
	}
	return t.respond(filtered, nil)
}

func (t *tools) reschedule(ctx context.Context, _ *sdkmcp.CallToolRequest, in rescheduleInput) (*sdkmcp.CallToolResult, any, error) {
	userID := getUserID(ctx)
	tz := in.TimeZone
	if tz == "" {
		current, err := t.svc.Schedules.Get(ctx, userID, in.ID)
		if err != nil {
			return t.respond(nil, err)
		}
		tz = current.TimeZone
	}
	at, err := schedule.ParseTime(in.ScheduledFor, tz)
	if err != nil {
		return t.respond(nil, err)
	}
	sched, err := t.svc.Schedules.Reschedule(ctx, userID, in.ID, at)
	return t.respond(sched, err)
}

func (t *tools) cancelSchedule(ctx context.Context, _ *sdkmcp.CallToolRequest, in cancelScheduleInput) (*sdkmcp.CallToolResult, any, error) {
	if err := t.svc.Schedules.Cancel(ctx, getUserID(ctx), in.ID); err != nil {
		return t.respond(nil, err)
	}
	return t.respond(map[string]string{"status": "cancelled", "id": in.ID}, nil)
}

func (t *tools) monthGrid(ctx context.Context, _ *sdkmcp.CallToolRequest, in monthGridInput) (*sdkmcp.CallToolResult, any, error) {
	loc, err := t.location(in.TimeZone)
	if err != nil {
		return t.respond(nil, err)
	}
	now := t.now().In(loc)
	year := in.Year
	if year == 0 {
		year = now.Year()
	}
	month := int(now.Month()) - 1
	if in.Month != nil {
		month = *in.Month
	}
	if month < 0 || month > 11 {
		return t.respond(nil, fmt.Errorf("%w: month must be 0-11", errInvalidArgument))
	}
	view, err := t.svc.Calendar.Month(ctx, getUserID(ctx), year, month, loc, now)
	return t.respond(view, err)
}

func (t *tools) dayEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, in dayEventsInput) (*sdkmcp.CallToolResult, any, error) {
	loc, err := t.location(in.TimeZone)
	if err != nil {
		return t.respond(nil, err)
	}
	date := t.now().In(loc)
	if in.Date != "" {
		date, err = time.ParseInLocation(time.DateOnly, in.Date, loc)
		if err != nil {
			return t.respond(nil, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidArgument))
		}
	}
	events, err := t.svc.Calendar.Day(ctx, getUserID(ctx), date.Year(), int(date.Month())-1, date.Day(), loc)
	return t.respond(events, err)
}

func (t *tools) overallAnalytics(ctx context.Context, _ *sdkmcp.CallToolRequest, in overallAnalyticsInput) (*sdkmcp.CallToolResult, any, error) {
	rng, err := analytics.ResolveRange(in.StartDate, in.EndDate, t.now())
	if err != nil {
		return t.respond(nil, err)
	}
	result, err := t.svc.Analytics.Overall(ctx, getUserID(ctx), rng)
	return t.respond(result, err)
}

func (t *tools) location(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return t.loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, schedule.ErrInvalidTimeZone
	}
	return loc, nil
}

// respond renders a tool result as JSON text, or a tool error carrying the
// mapped error code.
func (t *tools) respond(payload any, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		apiErr := MapError(err)
		if apiErr.Code == "INTERNAL" && t.logger != nil {
			t.logger.Error("mcp tool failed", "error", err)
		}
		data, _ := json.Marshal(apiErr)
		return &sdkmcp.CallToolResult{
			IsError: true,
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		}, nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
