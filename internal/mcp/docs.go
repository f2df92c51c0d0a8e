package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `cadence is a content calendar: content items are drafted, scheduled onto
platforms, published by a background worker and measured afterwards.

Workflow:
1) Browse with list_content (filters: status, type, query) and list_schedules.
2) Draft with create_content, then schedule_content with a content id,
   a time (RFC3339 or wall clock in timeZone) and platformIds.
3) Move or drop slots with reschedule and cancel_schedule.
4) Look at the plan with get_month_grid (month is zero-based) or get_day_events.
5) Check performance with get_overall_analytics.

Read cadence://docs/index for field formats and error codes.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "cadence://docs/index",
		Name:        "docs_index",
		Title:       "cadence docs index",
		Description: "Field formats, calendar conventions and error codes for cadence tools.",
		Content: `# cadence: Agent Docs

## Content

- Types: post, article, image, video, story, reel.
- Statuses: draft, scheduled, published, archived.
- New content defaults to a draft post. Scheduling a draft marks it scheduled.

## Schedules

- ` + "`scheduledFor`" + ` accepts RFC3339 (` + "`2025-04-10T09:30:00Z`" + `) or a wall clock
  time (` + "`2025-04-10T09:30`" + `) read in ` + "`timeZone`" + ` (IANA name, default UTC).
- ` + "`recurrence`" + ` is an RRULE such as ` + "`FREQ=WEEKLY;BYDAY=MO,WE`" + `.
- A posted one-off schedule cannot be rescheduled. Recurring schedules advance after each post.
- Cancelling the last schedule of scheduled content returns it to draft.

## Calendar

- Months are zero-based: 0 is January, 11 is December.
- A month grid has 42 cells (six weeks, Sunday first). Cells outside the month
  have ` + "`isCurrentMonth: false`" + `.
- Events are placed in the viewer's ` + "`timeZone`" + ` (default from server config).

## Analytics

- Ranges use ` + "`YYYY-MM-DD`" + ` bounds, inclusive; the default is the last 7 days.
- Engagement rate is engagements / impressions * 100, rounded to two decimals.

## Errors

Failed calls return ` + "`{\"code\", \"message\", \"recovery_hint\"}`" + `:
CONTENT_NOT_FOUND, SCHEDULE_NOT_FOUND, PLATFORM_NOT_FOUND, ALREADY_POSTED,
INVALID_TIME_ZONE, INVALID_RECURRENCE, NO_PLATFORMS, INVALID_INPUT, INTERNAL.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
