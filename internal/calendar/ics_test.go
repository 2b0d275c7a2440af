package calendar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

func fixedNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func enrich(events ...*event.Event) []transform.Enriched {
	rows := make([]transform.Enriched, 0, len(events))
	for _, e := range events {
		rows = append(rows, transform.Enrich(e))
	}
	return rows
}

func parse(t *testing.T, ics string) *ical.Calendar {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(ics))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v\n%s", err, ics)
	}
	return cal
}

func TestGenerate(t *testing.T) {
	fixedNow(t)

	rows := enrich(
		&event.Event{
			ID:        "111",
			Title:     "AI Workshop",
			StartDate: event.StringPtr("2026-03-04"),
			StartTime: event.StringPtr("10:00"),
			EndDate:   event.StringPtr("2026-03-04"),
			EndTime:   event.StringPtr("12:30"),
			Timezone:  event.StringPtr("America/New_York"),
			VenueName: event.StringPtr("Civic Hall"),
			URL:       event.StringPtr("https://www.eventbrite.com/e/111"),
		},
		&event.Event{
			ID:        "222",
			Title:     "Summit Day",
			StartDate: event.StringPtr("2026-03-10"),
			IsFree:    true,
		},
		&event.Event{
			ID:          "333",
			Title:       "Cancelled Meetup",
			StartDate:   event.StringPtr("2026-03-12"),
			StartTime:   event.StringPtr("18:00"),
			IsCancelled: true,
		},
	)

	ics := Generate(rows, "AI Events")

	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if !strings.Contains(ics, "X-WR-CALNAME:AI Events") {
		t.Error("missing calendar name")
	}

	cal := parse(t, ics)
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 VEVENTs, got %d", len(events))
	}

	for i, want := range []string{"111@eventbrite.com", "222@eventbrite.com", "333@eventbrite.com"} {
		if got := events[i].Id(); got != want {
			t.Errorf("event %d UID = %q, want %q", i, got, want)
		}
	}

	if got := events[0].GetProperty(ical.ComponentPropertySummary).Value; got != "AI Workshop" {
		t.Errorf("SUMMARY = %q, want 'AI Workshop'", got)
	}
	if got := events[0].GetProperty(ical.ComponentPropertyCategories).Value; got != "Workshop" {
		t.Errorf("CATEGORIES = %q, want Workshop", got)
	}

	// 10:00 in New York on Mar 4 is 15:00 UTC
	if !strings.Contains(ics, "DTSTART:20260304T150000Z") {
		t.Errorf("timed event start not converted from its timezone:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND:20260304T173000Z") {
		t.Errorf("timed event end missing:\n%s", ics)
	}

	// No start time means an all-day event
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20260310") {
		t.Errorf("expected all-day start for event without a time:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20260311") {
		t.Errorf("expected exclusive all-day end:\n%s", ics)
	}

	if got := events[2].GetProperty(ical.ComponentPropertyStatus).Value; got != string(ical.ObjectStatusCancelled) {
		t.Errorf("STATUS = %q, want CANCELLED", got)
	}
	if got := events[0].GetProperty(ical.ComponentPropertyStatus).Value; got != string(ical.ObjectStatusConfirmed) {
		t.Errorf("STATUS = %q, want CONFIRMED", got)
	}

	// No timezone falls back to UTC with a one hour default duration
	if !strings.Contains(ics, "DTSTART:20260312T180000Z") || !strings.Contains(ics, "DTEND:20260312T190000Z") {
		t.Errorf("expected UTC times for event without timezone:\n%s", ics)
	}
}

func TestGenerate_SkipsUndatedEvents(t *testing.T) {
	fixedNow(t)

	rows := enrich(
		&event.Event{ID: "1", Title: "Dated", StartDate: event.StringPtr("2026-03-04")},
		&event.Event{ID: "2", Title: "Undated"},
		&event.Event{ID: "3", Title: "Bad date", StartDate: event.StringPtr("soon")},
	)

	cal := parse(t, Generate(rows, ""))
	if got := len(cal.Events()); got != 1 {
		t.Errorf("expected 1 VEVENT, got %d", got)
	}
}

func TestGenerate_Empty(t *testing.T) {
	ics := Generate(nil, "")
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty input should produce no events")
	}
	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Error("empty input should still produce a calendar")
	}
}

func TestGenerate_UnknownTimezone(t *testing.T) {
	fixedNow(t)

	rows := enrich(&event.Event{
		ID:        "1",
		Title:     "Somewhere",
		StartDate: event.StringPtr("2026-03-04"),
		StartTime: event.StringPtr("09:00"),
		Timezone:  event.StringPtr("Mars/Olympus_Mons"),
	})

	if ics := Generate(rows, ""); !strings.Contains(ics, "DTSTART:20260304T090000Z") {
		t.Errorf("unknown timezone should fall back to UTC:\n%s", ics)
	}
}

func TestWriteFile(t *testing.T) {
	fixedNow(t)

	path := filepath.Join(t.TempDir(), "out", "events.ics")
	rows := enrich(&event.Event{ID: "1", Title: "Talk night", StartDate: event.StringPtr("2026-03-04")})

	written, err := WriteFile(path, rows, "Test")
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if written != path {
		t.Errorf("WriteFile() path = %q, want %q", written, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Count(string(data), "BEGIN:VEVENT") != 1 {
		t.Errorf("expected 1 VEVENT in file:\n%s", data)
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name  string
		event event.Event
		want  string
	}{
		{"online", event.Event{IsOnline: true, VenueName: event.StringPtr("Hall")}, "Online"},
		{"venue and address", event.Event{VenueName: event.StringPtr("Hall"), VenueAddress: event.StringPtr("New York")}, "Hall, New York"},
		{"address only", event.Event{VenueAddress: event.StringPtr("New York")}, "New York"},
		{"nothing", event.Event{}, "Location TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := transform.Enrich(&tt.event)
			if got := location(&row); got != tt.want {
				t.Errorf("location() = %q, want %q", got, tt.want)
			}
		})
	}
}
