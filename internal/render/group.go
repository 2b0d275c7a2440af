package render

import (
	"sort"

	"github.com/pfrederiksen/event-extractor/internal/transform"
)

// typeOrder is the section order in the newsletter; unknown types follow
// alphabetically.
var typeOrder = []string{
	"Conference",
	"Workshop",
	"Hackathon",
	"Course",
	"Talk",
	"Webinar",
	"Meetup",
	transform.DefaultType,
}

// Group is one newsletter section
type Group struct {
	Type   string
	Events []transform.Enriched
}

// GroupByType buckets rows by EventType, keeping row order within each bucket.
// Rows with no type are treated as transform.DefaultType.
func GroupByType(rows []transform.Enriched) []Group {
	buckets := make(map[string][]transform.Enriched)
	for _, row := range rows {
		t := row.EventType
		if t == "" {
			t = transform.DefaultType
		}
		buckets[t] = append(buckets[t], row)
	}

	groups := make([]Group, 0, len(buckets))
	for _, t := range typeOrder {
		if events, ok := buckets[t]; ok {
			groups = append(groups, Group{Type: t, Events: events})
			delete(buckets, t)
		}
	}

	rest := make([]string, 0, len(buckets))
	for t := range buckets {
		rest = append(rest, t)
	}
	sort.Strings(rest)
	for _, t := range rest {
		groups = append(groups, Group{Type: t, Events: buckets[t]})
	}
	return groups
}
