package transform

import (
	"testing"

	"github.com/pfrederiksen/event-extractor/internal/event"
)

func sp(s string) *string { return &s }

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		event event.Event
		want  string
	}{
		{"free flag", event.Event{IsFree: true}, "Free"},
		{"free flag wins over price", event.Event{IsFree: true, Price: sp("25.00"), Currency: sp("USD")}, "Free"},
		{"whole amount", event.Event{Price: sp("50.00"), Currency: sp("USD")}, "$50 USD"},
		{"cents kept", event.Event{Price: sp("5.04")}, "$5.04 USD"},
		{"trailing zero stripped", event.Event{Price: sp("5.40"), Currency: sp("EUR")}, "$5.4 EUR"},
		{"round hundreds", event.Event{Price: sp("100.00"), Currency: sp("USD")}, "$100 USD"},
		{"zero price is free", event.Event{Price: sp("0.00"), Currency: sp("USD")}, "Free"},
		{"default currency", event.Event{Price: sp("12")}, "$12 USD"},
		{"unparseable kept verbatim", event.Event{Price: sp("donation"), Currency: sp("USD")}, "donation"},
		{"no price", event.Event{}, "Paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(&tt.event); got != tt.want {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		date *string
		time *string
		want string
	}{
		{"morning", sp("2026-03-04"), sp("10:00"), "Wed, Mar 4 at 10:00 AM"},
		{"afternoon", sp("2026-03-04"), sp("14:30"), "Wed, Mar 4 at 2:30 PM"},
		{"midnight", sp("2026-03-04"), sp("00:00"), "Wed, Mar 4 at 12:00 AM"},
		{"noon", sp("2026-03-04"), sp("12:00"), "Wed, Mar 4 at 12:00 PM"},
		{"minutes padded", sp("2026-03-14"), sp("09:05"), "Sat, Mar 14 at 9:05 AM"},
		{"date only", sp("2026-03-04"), nil, "Wed, Mar 4"},
		{"time only", nil, sp("18:00"), "at 6:00 PM"},
		{"neither", nil, nil, "Date TBD"},
		{"bad date verbatim", sp("Spring 2026"), sp("10:00"), "Spring 2026 at 10:00 AM"},
		{"bad time verbatim", sp("2026-03-04"), sp("evening"), "Wed, Mar 4 at evening"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &event.Event{StartDate: tt.date, StartTime: tt.time}
			if got := FormatDate(e); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		name  string
		event event.Event
		want  string
	}{
		{"online wins", event.Event{IsOnline: true, VenueName: sp("Javits Center")}, "Online"},
		{"venue", event.Event{VenueName: sp("Javits Center")}, "Javits Center"},
		{"unknown", event.Event{}, "Location TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLocation(&tt.event); got != tt.want {
				t.Errorf("FormatLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}
