package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
)

// SortKey selects the primary ordering used by Sort
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
)

// Sentinels that order missing dates and times after every real value.
const (
	noDate = "9999-99-99"
	noTime = "99:99"
)

// ParseSortKey validates a user-supplied sort key. Empty means date.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDate, "":
		return SortByDate, nil
	case SortByTitle:
		return SortByTitle, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (want date or title)", s)
	}
}

// SortOptions controls Sort
type SortOptions struct {
	By        SortKey
	FreeFirst bool
}

// Sort returns a new slice ordered by opts. The sort is stable, so events with
// equal keys keep their fetch order.
func Sort(events []*event.Event, opts SortOptions) []*event.Event {
	sorted := make([]*event.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j], opts)
	})
	return sorted
}

func less(a, b *event.Event, opts SortOptions) bool {
	if ra, rb := freeRank(a, opts.FreeFirst), freeRank(b, opts.FreeFirst); ra != rb {
		return ra < rb
	}

	if opts.By == SortByTitle {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	}

	// ISO dates and HH:MM times order correctly as strings.
	da, db := orDefault(a.StartDate, noDate), orDefault(b.StartDate, noDate)
	if da != db {
		return da < db
	}
	return orDefault(a.StartTime, noTime) < orDefault(b.StartTime, noTime)
}

func freeRank(e *event.Event, freeFirst bool) int {
	if freeFirst && e.IsFree {
		return 0
	}
	return 1
}

func orDefault(p *string, def string) string {
	if v := event.Value(p); v != "" {
		return v
	}
	return def
}
