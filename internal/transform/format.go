package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
)

const defaultCurrency = "USD"

// FormatPrice returns "Free", "$50 USD", the raw price when it is not a
// number, or "Paid" when the event is not free but has no price.
func FormatPrice(e *event.Event) string {
	if e.IsFree {
		return "Free"
	}
	if e.Price == nil {
		return "Paid"
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(*e.Price), 64)
	if err != nil {
		return *e.Price
	}
	if amount == 0 {
		return "Free"
	}

	// 50.00 -> 50, 5.40 -> 5.4, 5.04 -> 5.04
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	formatted = strings.TrimSuffix(strings.TrimRight(formatted, "0"), ".")

	currency := event.Value(e.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	return fmt.Sprintf("$%s %s", formatted, currency)
}

// FormatDate renders the start as e.g. "Wed, Mar 4 at 2:30 PM".
func FormatDate(e *event.Event) string {
	var parts []string

	if raw := event.Value(e.StartDate); raw != "" {
		if d, ok := event.ParseDate(raw); ok {
			parts = append(parts, d.Format("Mon, Jan 2"))
		} else {
			parts = append(parts, raw)
		}
	}

	if raw := event.Value(e.StartTime); raw != "" {
		if hour, minute, ok := event.ParseClock(raw); ok {
			parts = append(parts, "at "+clock12(hour, minute))
		} else {
			parts = append(parts, "at "+raw)
		}
	}

	if len(parts) == 0 {
		return "Date TBD"
	}
	return strings.Join(parts, " ")
}

// clock12 formats a 24-hour time as "2:30 PM"; midnight is 12:00 AM.
func clock12(hour, minute int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

// FormatLocation returns "Online", the venue name, or "Location TBD".
func FormatLocation(e *event.Event) string {
	if e.IsOnline {
		return "Online"
	}
	if name := event.Value(e.VenueName); name != "" {
		return name
	}
	return "Location TBD"
}
