package transform

import (
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
)

// DefaultType is used when no keyword matches.
const DefaultType = "Event"

type category struct {
	Label    string
	Keywords []string
}

// categories is checked top to bottom and the first match wins, so a
// "conference workshop" is a Conference.
var categories = []category{
	{"Conference", []string{"conference", "summit", "symposium", "forum", "congress"}},
	{"Workshop", []string{"workshop", "hands-on", "hands on", "bootcamp", "boot camp", "training", "masterclass", "master class", "crash course"}},
	{"Meetup", []string{"meetup", "meet-up", "meet up", "networking", "mixer", "social", "happy hour", "after dark"}},
	{"Webinar", []string{"webinar", "online session", "virtual event", "livestream", "live stream"}},
	{"Hackathon", []string{"hackathon", "hack-a-thon", "buildathon", "code jam"}},
	{"Talk", []string{"talk", "lecture", "keynote", "speaker", "panel", "fireside chat", "presentation"}},
	{"Course", []string{"course", "class", "certification", "fundamentals", "foundations", "intro to", "introduction to", "basics"}},
}

// Classify guesses the event type from the title, summary and tags.
func Classify(e *event.Event) string {
	haystack := searchText(e)
	for _, c := range categories {
		for _, kw := range c.Keywords {
			if strings.Contains(haystack, kw) {
				return c.Label
			}
		}
	}
	return DefaultType
}

// Types lists every label Classify can return, in priority order.
func Types() []string {
	types := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		types = append(types, c.Label)
	}
	return append(types, DefaultType)
}

func searchText(e *event.Event) string {
	var b strings.Builder
	b.WriteString(e.Title)
	if e.Summary != nil {
		b.WriteString(" ")
		b.WriteString(*e.Summary)
	}
	for _, tag := range e.Tags {
		b.WriteString(" ")
		b.WriteString(tag)
	}
	return strings.ToLower(b.String())
}
