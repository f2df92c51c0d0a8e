// Package ical renders schedules as an iCalendar feed.
package ical

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// EventDuration is the length given to each published slot.
const EventDuration = 30 * time.Minute

const localStamp = "20060102T150405"

// ProductID identifies the generator in the feed.
const ProductID = "-//cadence//content calendar//EN"

// Feed holds what a calendar export needs besides the schedules.
type Feed struct {
	Name          string
	Titles        map[string]string // content ID -> title
	PlatformNames map[string]string // platform ID -> display name
	Now           time.Time
}

// Export renders schedules as a VCALENDAR. Recurring schedules carry their RRULE.
func Export(scheds []schedule.Schedule, feed Feed) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if feed.Name != "" {
		cal.SetXWRCalName(feed.Name)
	}

	stamp := feed.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for _, s := range scheds {
		event := cal.AddEvent(s.ID + "@cadence")
		event.SetDtStampTime(stamp.UTC())
		setSpan(event, s)
		event.SetSummary(title(s, feed.Titles))
		event.SetDescription(description(s))
		for _, name := range platformNames(s, feed.PlatformNames) {
			event.AddProperty(ics.ComponentPropertyCategories, name)
		}
		if s.Recurring() {
			event.AddProperty(ics.ComponentPropertyRrule, s.Recurrence)
		}
	}

	return cal.Serialize()
}

// setSpan writes DTSTART and DTEND. Outside UTC they carry the schedule's
// TZID so an RRULE expands in local wall time across DST changes.
// Recurring events start at the first occurrence of the series.
func setSpan(event *ics.VEvent, s schedule.Schedule) {
	start := s.Local()
	if s.Recurring() {
		start = s.Anchor()
	}
	if s.TimeZone == "" || start.Location() == time.UTC {
		event.SetStartAt(start)
		event.SetEndAt(start.Add(EventDuration))
		return
	}
	tz := ics.WithTZID(s.TimeZone)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localStamp), tz)
	event.SetProperty(ics.ComponentPropertyDtEnd, start.Add(EventDuration).Format(localStamp), tz)
}

func title(s schedule.Schedule, titles map[string]string) string {
	if t, ok := titles[s.ContentID]; ok && t != "" {
		return t
	}
	return "Content for " + strings.Join(s.PlatformIDs, ", ")
}

func description(s schedule.Schedule) string {
	desc := "Status: " + string(s.Status)
	if s.TimeZone != "" {
		desc += "\nTime zone: " + s.TimeZone
	}
	if s.Error != "" {
		desc += "\nError: " + s.Error
	}
	return desc
}

func platformNames(s schedule.Schedule, names map[string]string) []string {
	out := make([]string, 0, len(s.PlatformIDs))
	for _, id := range s.PlatformIDs {
		if name, ok := names[id]; ok && name != "" {
			out = append(out, name)
			continue
		}
		out = append(out, id)
	}
	return out
}
