package transform

import (
	"time"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/logger"
)

// Enriched is an event plus the fields derived for display. It encodes to a
// single flat JSON object.
type Enriched struct {
	event.Event
	DisplayPrice    string `json:"display_price"`
	DisplayDate     string `json:"display_date"`
	DisplayLocation string `json:"display_location"`
	EventType       string `json:"event_type"`
}

// Enrich derives the display fields for e. The returned value holds its own
// copy of the event.
func Enrich(e *event.Event) Enriched {
	return Enriched{
		Event:           *e.Clone(),
		DisplayPrice:    FormatPrice(e),
		DisplayDate:     FormatDate(e),
		DisplayLocation: FormatLocation(e),
		EventType:       Classify(e),
	}
}

// Options for Run
type Options struct {
	RemoveCancelled bool
	RemovePast      bool
	ReferenceDate   time.Time // zero means today
	SortBy          SortKey
	FreeFirst       bool
}

// DefaultOptions drops cancelled and past events and sorts by date.
func DefaultOptions() Options {
	return Options{
		RemoveCancelled: true,
		RemovePast:      true,
		SortBy:          SortByDate,
	}
}

// Run filters, sorts and enriches events, in that order.
func Run(events []*event.Event, opts Options) []Enriched {
	filtered := Filter(events, FilterOptions{
		RemoveCancelled: opts.RemoveCancelled,
		RemovePast:      opts.RemovePast,
		ReferenceDate:   opts.ReferenceDate,
	})
	sorted := Sort(filtered, SortOptions{By: opts.SortBy, FreeFirst: opts.FreeFirst})

	enriched := make([]Enriched, 0, len(sorted))
	for _, evt := range sorted {
		enriched = append(enriched, Enrich(evt))
	}

	logger.Info("Transform complete", logger.Fields{"input": len(events), "output": len(enriched)})
	return enriched
}
