package event

import "time"

// dateLayouts are tried in order; the first is what the API sends.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
}

// ParseDate parses an event start/end date ("2026-03-04") as a calendar date in UTC.
// Returns false if the text is empty or not a date.
func ParseDate(dateText string) (time.Time, bool) {
	if dateText == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock parses a 24-hour "HH:MM" time of day.
func ParseClock(timeText string) (hour, minute int, ok bool) {
	if timeText == "" {
		return 0, 0, false
	}
	t, err := time.Parse("15:04", timeText)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// IsPast reports whether the event starts strictly before the calendar day of ref.
// Returns false when the start date is missing or cannot be parsed.
func (e *Event) IsPast(ref time.Time) bool {
	start, ok := ParseDate(Value(e.StartDate))
	if !ok {
		return false // can't tell, keep it
	}
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return start.Before(day)
}
