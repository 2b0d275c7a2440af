package transform

import (
	"time"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/logger"
)

// FilterOptions controls which events Filter removes
type FilterOptions struct {
	RemoveCancelled bool
	RemovePast      bool

	// ReferenceDate is "today" for the past check. Zero means the current local date.
	ReferenceDate time.Time
}

// Filter returns the events that survive opts, in their original order.
// Events without a usable start date are never removed as past.
func Filter(events []*event.Event, opts FilterOptions) []*event.Event {
	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}

	result := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if opts.RemoveCancelled && evt.IsCancelled {
			logger.Debug("Filtered out cancelled event", logger.Fields{"event_id": evt.ID, "title": evt.Title})
			continue
		}
		if opts.RemovePast && evt.IsPast(ref) {
			logger.Debug("Filtered out past event", logger.Fields{
				"event_id":   evt.ID,
				"title":      evt.Title,
				"start_date": event.Value(evt.StartDate),
			})
			continue
		}
		result = append(result, evt)
	}

	if removed := len(events) - len(result); removed > 0 {
		logger.Info("Filtered events", logger.Fields{"removed": removed, "remaining": len(result)})
	}
	return result
}
