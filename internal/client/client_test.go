package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/cadence/internal/client"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/schedule"
	"github.com/rpggio/cadence/internal/testserver"
)

func ptr[T any](v T) *T { return &v }

func TestClient_LoginAndLogout(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()
	c := client.New(ts.URL())

	_, err := c.Me(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	user, err := c.Login(ctx, testserver.UserEmail, testserver.UserPassword)
	require.NoError(t, err)
	require.Equal(t, ts.UserID, user.ID)
	require.True(t, c.Session().Active())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, testserver.UserEmail, me.Email)

	require.NoError(t, c.Logout(ctx))
	require.False(t, c.Session().Active())
	require.Nil(t, c.Session().User())
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	ts := testserver.New(t)
	c := client.New(ts.URL(), client.WithToken("stale"))
	require.True(t, c.Session().Active())

	_, err := c.ListContent(context.Background(), client.ContentFilter{})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	require.False(t, c.Session().Active())
}

func TestClient_APIError(t *testing.T) {
	ts := testserver.New(t)
	c := client.New(ts.URL(), client.WithToken(ts.Token))

	_, err := c.GetContent(context.Background(), "missing")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "content not found", apiErr.Message)

	_, err = c.Register(context.Background(), "Dup", testserver.UserEmail, "another password")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestClient_ContentAndSchedule(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()
	c := client.New(ts.URL(), client.WithToken(ts.Token))

	p, err := c.ConnectPlatform(ctx, "linkedin", "Cadence Inc", "")
	require.NoError(t, err)
	require.True(t, p.Connected)

	item, err := c.CreateContent(ctx, client.ContentInput{
		Title:       ptr("Quarterly roundup"),
		ContentType: ptr(content.TypeArticle),
		Platforms:   []content.PlatformRef{{ID: p.ID, Name: p.Name, PlatformID: p.ID}},
		Tags:        []string{"news"},
	})
	require.NoError(t, err)
	require.Equal(t, content.StatusDraft, item.Status)

	item, err = c.UpdateContent(ctx, item.ID, client.ContentInput{Description: ptr("Highlights from Q1")})
	require.NoError(t, err)
	require.Equal(t, "Quarterly roundup", item.Title)
	require.Equal(t, "Highlights from Q1", item.Description)

	page, err := c.ListContent(ctx, client.ContentFilter{Type: content.TypeArticle})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalItems)

	hits, err := c.SearchContent(ctx, "highlights")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	sched, err := c.ScheduleContent(ctx, item.ID, client.ScheduleInput{
		ScheduledFor: "2025-06-02T08:00",
		TimeZone:     "America/New_York",
	})
	require.NoError(t, err)
	require.Equal(t, 12, sched.ScheduledFor.UTC().Hour())
	require.Equal(t, schedule.StatusScheduled, sched.Status)

	scheds, err := c.SchedulesBetween(ctx, "2025-06-01", "2025-06-07")
	require.NoError(t, err)
	require.Len(t, scheds, 1)

	week, err := c.Week(ctx, "2025-06-03", "America/New_York")
	require.NoError(t, err)
	require.Len(t, week.Cells, 7)

	month, err := c.Month(ctx, 2025, 5, "")
	require.NoError(t, err)
	require.Equal(t, "June 2025", month.Label)

	feed, err := c.CalendarFeed(ctx)
	require.NoError(t, err)
	require.Contains(t, feed, "BEGIN:VCALENDAR")
	require.Contains(t, feed, "Quarterly roundup")

	moved, err := c.Reschedule(ctx, sched.ID, "2025-06-03T13:00:00Z")
	require.NoError(t, err)
	require.Equal(t, 3, moved.ScheduledFor.UTC().Day())

	require.NoError(t, c.CancelSchedule(ctx, sched.ID))
	scheds, err = c.ListSchedules(ctx, "", item.ID)
	require.NoError(t, err)
	require.Empty(t, scheds)

	require.NoError(t, c.DeleteContent(ctx, item.ID))
	_, err = c.GetContent(ctx, item.ID)
	require.Error(t, err)
}

func TestClient_AnalyticsAndActivity(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()
	c := client.New(ts.URL(), client.WithToken(ts.Token))

	p, err := c.ConnectPlatform(ctx, "facebook", "Cadence", "")
	require.NoError(t, err)
	item, err := c.CreateContent(ctx, client.ContentInput{Title: ptr("Clip"), ContentType: ptr(content.TypeVideo)})
	require.NoError(t, err)

	in := client.MetricsInput{PlatformID: p.ID, Date: "2025-03-15"}
	in.Impressions = 1000
	in.Engagements = 100
	_, err = c.RecordMetrics(ctx, item.ID, in)
	require.NoError(t, err)

	perContent, err := c.ContentAnalytics(ctx, item.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1000, perContent.Impressions)

	rng := client.DateRange{StartDate: "2025-03-01", EndDate: "2025-03-31"}
	overall, err := c.OverallAnalytics(ctx, rng)
	require.NoError(t, err)
	require.Equal(t, 10.0, overall.EngagementRate)

	perPlatform, err := c.PlatformAnalytics(ctx, p.ID, rng)
	require.NoError(t, err)
	require.EqualValues(t, 1000, perPlatform.Impressions)

	types, err := c.ContentTypeAnalytics(ctx, client.DateRange{})
	require.NoError(t, err)
	require.Equal(t, 1, types[content.TypeVideo])

	platforms, err := c.Platforms(ctx)
	require.NoError(t, err)
	require.Len(t, platforms, 1)

	disconnected, err := c.DisconnectPlatform(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, disconnected.Connected)

	entries, err := c.Activity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
