package analytics

import (
	"math"
	"time"

	"github.com/rpggio/cadence/internal/domain/content"
)

// DayLayout is the calendar-day format used for metric days.
const DayLayout = "2006-01-02"

// Counters are the raw engagement numbers reported for content
type Counters struct {
	Impressions int64 `json:"impressions"`
	Engagements int64 `json:"engagements"`
	Clicks      int64 `json:"clicks"`
	Shares      int64 `json:"shares"`
	Likes       int64 `json:"likes"`
	Comments    int64 `json:"comments"`
}

func (c *Counters) add(o Counters) {
	c.Impressions += o.Impressions
	c.Engagements += o.Engagements
	c.Clicks += o.Clicks
	c.Shares += o.Shares
	c.Likes += o.Likes
	c.Comments += o.Comments
}

// Metrics is one day of counters for a content item on a platform
type Metrics struct {
	ContentID  string `json:"contentId"`
	PlatformID string `json:"platformId"`
	Day        string `json:"date"`
	Counters
}

// MetricRow is a metrics row joined with its content and platform
type MetricRow struct {
	Metrics
	ContentType  content.ContentType
	PlatformType string
	PlatformName string
}

// ContentAnalytics aggregates all metrics of one content item
type ContentAnalytics struct {
	ContentID string `json:"contentId"`
	Counters
	PlatformSpecific map[string]Counters `json:"platformSpecific,omitempty"`
}

// PlatformAnalytics aggregates metrics for one platform
type PlatformAnalytics struct {
	Platform       string  `json:"platform"`
	ContentCount   int     `json:"contentCount"`
	Impressions    int64   `json:"impressions"`
	Engagements    int64   `json:"engagements"`
	EngagementRate float64 `json:"engagementRate"`
}

// TimePerformance is one day of the performance series
type TimePerformance struct {
	Date        string `json:"date"`
	Impressions int64  `json:"impressions"`
	Engagements int64  `json:"engagements"`
	Posts       int    `json:"posts"`
}

// OverallAnalytics summarizes a user's performance over a range
type OverallAnalytics struct {
	StartDate            string                       `json:"startDate"`
	EndDate              string                       `json:"endDate"`
	TotalContentCount    int                          `json:"totalContentCount"`
	TotalImpressions     int64                        `json:"totalImpressions"`
	TotalEngagements     int64                        `json:"totalEngagements"`
	EngagementRate       float64                      `json:"engagementRate"`
	PlatformBreakdown    map[string]PlatformAnalytics `json:"platformBreakdown"`
	ContentTypeBreakdown map[content.ContentType]int  `json:"contentTypeBreakdown"`
	TimePerformance      []TimePerformance            `json:"timePerformance"`
}

// Range is an inclusive span of calendar days
type Range struct {
	Start time.Time
	End   time.Time
}

// StartDay returns the first day formatted as YYYY-MM-DD.
func (r Range) StartDay() string { return r.Start.Format(DayLayout) }

// EndDay returns the last day formatted as YYYY-MM-DD.
func (r Range) EndDay() string { return r.End.Format(DayLayout) }

// Days lists every day of the range in order.
func (r Range) Days() []string {
	var days []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayLayout))
	}
	return days
}

// EngagementRate returns engagements per hundred impressions, rounded to two decimals.
func EngagementRate(engagements, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	rate := float64(engagements) / float64(impressions) * 100
	return math.Round(rate*100) / 100
}
