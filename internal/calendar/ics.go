// Package calendar exports enriched events as an iCalendar feed.
package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/export"
	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

const (
	productID = "-//event-extractor//Eventbrite Events//EN"
	uidDomain = "eventbrite.com"

	// defaultDuration is used for timed events that have no usable end.
	defaultDuration = time.Hour
)

// now is replaced in tests
var now = time.Now

// Generate builds a calendar with one VEVENT per row. name becomes the
// X-WR-CALNAME shown by most calendar apps; empty leaves it unset.
func Generate(rows []transform.Enriched, name string) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	stamp := now().UTC()
	skipped := 0
	for i := range rows {
		if !addEvent(cal, &rows[i], stamp) {
			skipped++
		}
	}
	if skipped > 0 {
		logger.Warn("Skipped events without a start date", logger.Fields{"count": skipped})
	}

	return cal.Serialize()
}

// WriteFile writes the calendar for rows to path, creating parent directories.
func WriteFile(path string, rows []transform.Enriched, name string) (string, error) {
	path, err := export.Prepare(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(Generate(rows, name)), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("Exported calendar", logger.Fields{"count": len(rows), "path": path})
	return path, nil
}

// addEvent reports false when the row has no parseable start date; a calendar
// entry without a date is useless.
func addEvent(cal *ical.Calendar, row *transform.Enriched, stamp time.Time) bool {
	startDay, ok := event.ParseDate(event.Value(row.StartDate))
	if !ok {
		return false
	}

	ve := cal.AddEvent(fmt.Sprintf("%s@%s", row.ID, uidDomain))
	ve.SetDtStampTime(stamp)
	ve.SetSummary(row.Title)
	ve.SetLocation(location(row))
	ve.SetDescription(description(row))
	ve.SetProperty(ical.ComponentPropertyCategories, row.EventType)
	if url := event.Value(row.URL); url != "" {
		ve.SetURL(url)
	}
	if row.IsCancelled {
		ve.SetStatus(ical.ObjectStatusCancelled)
	} else {
		ve.SetStatus(ical.ObjectStatusConfirmed)
	}

	loc := zone(event.Value(row.Timezone))
	start, timed := at(startDay, event.Value(row.StartTime), loc)
	if !timed {
		ve.SetAllDayStartAt(startDay)
		// DTEND is exclusive for all-day events
		endDay := startDay
		if d, ok := event.ParseDate(event.Value(row.EndDate)); ok && d.After(startDay) {
			endDay = d
		}
		ve.SetAllDayEndAt(endDay.AddDate(0, 0, 1))
		return true
	}

	ve.SetStartAt(start)
	end := start.Add(defaultDuration)
	if endDay, ok := event.ParseDate(event.Value(row.EndDate)); ok {
		if t, ok := at(endDay, event.Value(row.EndTime), loc); ok && t.After(start) {
			end = t
		}
	}
	ve.SetEndAt(end)
	return true
}

// at combines a calendar day and an "HH:MM" clock in loc
func at(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	hour, minute, ok := event.ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}

// zone loads an IANA timezone name, falling back to UTC
func zone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Debug("Unknown timezone, using UTC", logger.Fields{"timezone": name})
		return time.UTC
	}
	return loc
}

func location(row *transform.Enriched) string {
	if row.IsOnline {
		return "Online"
	}
	parts := make([]string, 0, 2)
	if v := event.Value(row.VenueName); v != "" {
		parts = append(parts, v)
	}
	if v := event.Value(row.VenueAddress); v != "" {
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return row.DisplayLocation
	}
	return strings.Join(parts, ", ")
}

func description(row *transform.Enriched) string {
	var b strings.Builder
	if s := event.Value(row.Summary); s != "" {
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s · %s", row.EventType, row.DisplayPrice)
	if org := event.Value(row.OrganizerName); org != "" {
		fmt.Fprintf(&b, "\nHosted by %s", org)
	}
	if url := event.Value(row.URL); url != "" {
		fmt.Fprintf(&b, "\n%s", url)
	}
	return b.String()
}
