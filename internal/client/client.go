// Package client is a typed HTTP client for the cadence REST API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rpggio/cadence/internal/calendar"
	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/domain/activity"
	"github.com/rpggio/cadence/internal/domain/analytics"
	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// ErrUnauthorized is returned on HTTP 401. The session is cleared first.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client calls the REST API on behalf of one session.
type Client struct {
	http    *resty.Client
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.session.set(token, nil) }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		base := c.http.BaseURL
		c.http = resty.NewWithClient(hc).SetBaseURL(base)
		c.configure()
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		session: &Session{},
	}
	c.configure()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) configure() {
	c.http.SetHeader("Accept", "application/json")
	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token := c.session.Token(); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})
}

// Session returns the client's session.
func (c *Client) Session() *Session {
	return c.session
}

// do sends one request and decodes a JSON result into out.
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request), out any) error {
	_, err := c.exec(ctx, method, path, build, out)
	return err
}

// exec sends one request. A 401 clears the session and yields ErrUnauthorized.
func (c *Client) exec(ctx context.Context, method, path string, build func(*resty.Request), out any) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if out != nil {
		req.SetResult(out)
	}
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		c.session.Clear()
		return nil, ErrUnauthorized
	}
	if resp.IsError() {
		msg := http.StatusText(resp.StatusCode())
		if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
			msg = body.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return resp, nil
}

func jsonBody(body any) func(*resty.Request) {
	return func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
}

// Register creates an account and signs in as it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*account.User, error) {
	var sess account.Session
	err := c.do(ctx, http.MethodPost, "/auth/register", jsonBody(map[string]string{
		"name": name, "email": email, "password": password,
	}), &sess)
	if err != nil {
		return nil, err
	}
	c.session.set(sess.Token, &sess.User)
	return &sess.User, nil
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*account.User, error) {
	var sess account.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", jsonBody(map[string]string{
		"email": email, "password": password,
	}), &sess)
	if err != nil {
		return nil, err
	}
	c.session.set(sess.Token, &sess.User)
	return &sess.User, nil
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*account.User, error) {
	var user account.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	c.session.set(c.session.Token(), &user)
	return &user, nil
}

// Logout revokes the token. The session is cleared even if the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ContentFilter narrows a content listing.
type ContentFilter struct {
	Status   content.Status
	Type     content.ContentType
	Query    string
	Page     int
	PageSize int
}

func (f ContentFilter) params() map[string]string {
	p := map[string]string{}
	if f.Status != "" {
		p["status"] = string(f.Status)
	}
	if f.Type != "" {
		p["type"] = string(f.Type)
	}
	if f.Query != "" {
		p["q"] = f.Query
	}
	if f.Page > 0 {
		p["page"] = strconv.Itoa(f.Page)
	}
	if f.PageSize > 0 {
		p["pageSize"] = strconv.Itoa(f.PageSize)
	}
	return p
}

// ContentInput is the body of create and update calls. Nil fields are left
// unchanged on update.
type ContentInput struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	ContentType *content.ContentType  `json:"contentType,omitempty"`
	Status      *content.Status       `json:"status,omitempty"`
	Platforms   []content.PlatformRef `json:"platforms,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
}

// ListContent returns one page of content.
func (c *Client) ListContent(ctx context.Context, f ContentFilter) (*content.Page, error) {
	var page content.Page
	err := c.do(ctx, http.MethodGet, "/content", func(r *resty.Request) {
		r.SetQueryParams(f.params())
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchContent runs a full-text search.
func (c *Client) SearchContent(ctx context.Context, query string) ([]content.SearchResult, error) {
	var results []content.SearchResult
	err := c.do(ctx, http.MethodGet, "/content/search", func(r *resty.Request) {
		r.SetQueryParam("q", query)
	}, &results)
	return results, err
}

// GetContent fetches one content item.
func (c *Client) GetContent(ctx context.Context, id string) (*content.Item, error) {
	var item content.Item
	err := c.do(ctx, http.MethodGet, "/content/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateContent creates a content item.
func (c *Client) CreateContent(ctx context.Context, in ContentInput) (*content.Item, error) {
	var item content.Item
	if err := c.do(ctx, http.MethodPost, "/content", jsonBody(in), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateContent applies a partial update.
func (c *Client) UpdateContent(ctx context.Context, id string, in ContentInput) (*content.Item, error) {
	var item content.Item
	err := c.do(ctx, http.MethodPut, "/content/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
		jsonBody(in)(r)
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteContent deletes a content item and its schedules.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/content/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, nil)
}

// ScheduleInput is the body of a schedule call. ScheduledFor is RFC3339 or a
// wall clock time in TimeZone.
type ScheduleInput struct {
	ScheduledFor string   `json:"scheduledFor"`
	TimeZone     string   `json:"timeZone,omitempty"`
	PlatformIDs  []string `json:"platformIds,omitempty"`
	Recurrence   string   `json:"recurrence,omitempty"`
}

// ScheduleContent schedules a content item.
func (c *Client) ScheduleContent(ctx context.Context, contentID string, in ScheduleInput) (*schedule.Schedule, error) {
	var sched schedule.Schedule
	err := c.do(ctx, http.MethodPost, "/content/{id}/schedule", func(r *resty.Request) {
		r.SetPathParam("id", contentID)
		jsonBody(in)(r)
	}, &sched)
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// ContentAnalytics returns the totals of one content item.
func (c *Client) ContentAnalytics(ctx context.Context, contentID string) (*analytics.ContentAnalytics, error) {
	var result analytics.ContentAnalytics
	err := c.do(ctx, http.MethodGet, "/content/{id}/analytics", func(r *resty.Request) {
		r.SetPathParam("id", contentID)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MetricsInput is one day of counters for a content item.
type MetricsInput struct {
	PlatformID string `json:"platformId"`
	Date       string `json:"date,omitempty"`
	analytics.Counters
}

// RecordMetrics stores one day of counters.
func (c *Client) RecordMetrics(ctx context.Context, contentID string, in MetricsInput) (*analytics.Metrics, error) {
	var m analytics.Metrics
	err := c.do(ctx, http.MethodPost, "/content/{id}/analytics", func(r *resty.Request) {
		r.SetPathParam("id", contentID)
		jsonBody(in)(r)
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListSchedules lists schedules, optionally by status and content.
func (c *Client) ListSchedules(ctx context.Context, status schedule.Status, contentID string) ([]schedule.Schedule, error) {
	var scheds []schedule.Schedule
	err := c.do(ctx, http.MethodGet, "/schedule", func(r *resty.Request) {
		if status != "" {
			r.SetQueryParam("status", string(status))
		}
		if contentID != "" {
			r.SetQueryParam("contentId", contentID)
		}
	}, &scheds)
	return scheds, err
}

// SchedulesBetween lists schedules in an inclusive YYYY-MM-DD range.
func (c *Client) SchedulesBetween(ctx context.Context, startDate, endDate string) ([]schedule.Schedule, error) {
	var scheds []schedule.Schedule
	err := c.do(ctx, http.MethodGet, "/schedule/date-range", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{"startDate": startDate, "endDate": endDate})
	}, &scheds)
	return scheds, err
}

// Reschedule moves a schedule.
func (c *Client) Reschedule(ctx context.Context, id, scheduledFor string) (*schedule.Schedule, error) {
	var sched schedule.Schedule
	err := c.do(ctx, http.MethodPut, "/schedule/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
		jsonBody(map[string]string{"scheduledFor": scheduledFor})(r)
	}, &sched)
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// CancelSchedule deletes a schedule.
func (c *Client) CancelSchedule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/schedule/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, nil)
}

// CalendarFeed downloads the iCalendar export.
func (c *Client) CalendarFeed(ctx context.Context) (string, error) {
	resp, err := c.exec(ctx, http.MethodGet, "/schedule/calendar.ics", func(r *resty.Request) {
		r.SetHeader("Accept", "text/calendar")
	}, nil)
	if err != nil {
		return "", err
	}
	return resp.String(), nil
}

// Month fetches the month view. month is zero-based; tz may be empty.
func (c *Client) Month(ctx context.Context, year, month int, tz string) (*calendar.MonthView, error) {
	var view calendar.MonthView
	err := c.do(ctx, http.MethodGet, "/calendar/month", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{"year": strconv.Itoa(year), "month": strconv.Itoa(month)})
		if tz != "" {
			r.SetQueryParam("tz", tz)
		}
	}, &view)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Week fetches the week containing date (YYYY-MM-DD).
func (c *Client) Week(ctx context.Context, date, tz string) (*calendar.WeekView, error) {
	var view calendar.WeekView
	err := c.do(ctx, http.MethodGet, "/calendar/week", func(r *resty.Request) {
		r.SetQueryParam("date", date)
		if tz != "" {
			r.SetQueryParam("tz", tz)
		}
	}, &view)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Platforms lists the user's platforms.
func (c *Client) Platforms(ctx context.Context) ([]platform.Platform, error) {
	var platforms []platform.Platform
	err := c.do(ctx, http.MethodGet, "/platforms", nil, &platforms)
	return platforms, err
}

// ConnectPlatform connects an account on a platform type such as "twitter".
func (c *Client) ConnectPlatform(ctx context.Context, platformType, accountName, accountID string) (*platform.Platform, error) {
	var p platform.Platform
	err := c.do(ctx, http.MethodPost, "/platforms/{type}/connect", func(r *resty.Request) {
		r.SetPathParam("type", platformType)
		jsonBody(map[string]string{"accountName": accountName, "accountId": accountID})(r)
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DisconnectPlatform disconnects a platform.
func (c *Client) DisconnectPlatform(ctx context.Context, id string) (*platform.Platform, error) {
	var p platform.Platform
	err := c.do(ctx, http.MethodDelete, "/platforms/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DateRange bounds analytics queries. Empty bounds use the server default.
type DateRange struct {
	StartDate string
	EndDate   string
}

func (d DateRange) apply(r *resty.Request) {
	if d.StartDate != "" {
		r.SetQueryParam("startDate", d.StartDate)
	}
	if d.EndDate != "" {
		r.SetQueryParam("endDate", d.EndDate)
	}
}

// OverallAnalytics fetches the dashboard summary.
func (c *Client) OverallAnalytics(ctx context.Context, rng DateRange) (*analytics.OverallAnalytics, error) {
	var result analytics.OverallAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/overall", rng.apply, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PlatformAnalytics fetches the totals of one platform.
func (c *Client) PlatformAnalytics(ctx context.Context, platformID string, rng DateRange) (*analytics.PlatformAnalytics, error) {
	var result analytics.PlatformAnalytics
	err := c.do(ctx, http.MethodGet, "/analytics/platform/{id}", func(r *resty.Request) {
		r.SetPathParam("id", platformID)
		rng.apply(r)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ContentTypeAnalytics counts content per type.
func (c *Client) ContentTypeAnalytics(ctx context.Context, rng DateRange) (map[content.ContentType]int, error) {
	result := map[content.ContentType]int{}
	if err := c.do(ctx, http.MethodGet, "/analytics/content-types", rng.apply, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Activity lists recent activity, newest first.
func (c *Client) Activity(ctx context.Context, limit int) ([]activity.ActivityEntry, error) {
	var entries []activity.ActivityEntry
	err := c.do(ctx, http.MethodGet, "/activity", func(r *resty.Request) {
		if limit > 0 {
			r.SetQueryParam("limit", strconv.Itoa(limit))
		}
	}, &entries)
	return entries, err
}
