// Package render builds the HTML newsletter from enriched events.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/export"
	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

const DefaultTitle = "AI Events in NYC"

//go:embed templates/newsletter.html
var templateFS embed.FS

var newsletterTmpl = template.Must(
	template.New("newsletter.html").
		Funcs(template.FuncMap{"deref": event.Value}).
		ParseFS(templateFS, "templates/newsletter.html"),
)

// Options customises the newsletter. Zero values get sensible defaults.
type Options struct {
	Title    string
	Subtitle string // default: current month, e.g. "March 2026"
	Intro    string // default: generated from the event counts

	// Topic and Place only feed the generated intro.
	Topic string // default "AI"
	Place string // default "New York City"; set to "-" to omit

	Now time.Time // zero means time.Now()
}

type page struct {
	Title     string
	Subtitle  string
	Intro     string
	Groups    []Group
	Total     int
	Generated string
}

// Newsletter renders rows as a self-contained HTML document.
func Newsletter(rows []transform.Enriched, opts Options) (string, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	groups := GroupByType(rows)
	p := page{
		Title:     opts.Title,
		Subtitle:  opts.Subtitle,
		Intro:     opts.Intro,
		Groups:    groups,
		Total:     len(rows),
		Generated: now.Format("January 02, 2006"),
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Subtitle == "" {
		p.Subtitle = now.Format("January 2006")
	}
	if p.Intro == "" {
		p.Intro = Intro(rows, groups, opts.Topic, opts.Place)
	}

	var buf bytes.Buffer
	if err := newsletterTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("rendering newsletter: %w", err)
	}

	logger.Info("Rendered newsletter", logger.Fields{"events": len(rows), "groups": len(groups)})
	return buf.String(), nil
}

// WriteFile renders the newsletter and writes it to path.
func WriteFile(path string, rows []transform.Enriched, opts Options) (string, error) {
	html, err := Newsletter(rows, opts)
	if err != nil {
		return "", err
	}

	path, err = export.Prepare(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("writing newsletter: %w", err)
	}

	logger.Info("Newsletter saved", logger.Fields{"path": path})
	return path, nil
}

// Intro builds the default opening paragraph, e.g. "We've curated 4 upcoming
// AI events in New York City for you, spanning conferences, workshops, and talks."
func Intro(rows []transform.Enriched, groups []Group, topic, place string) string {
	if topic == "" {
		topic = "AI"
	}
	switch place {
	case "":
		place = " in New York City"
	case "-":
		place = ""
	default:
		place = " in " + place
	}

	free := 0
	for _, row := range rows {
		if row.DisplayPrice == "Free" {
			free++
		}
	}

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, strings.ToLower(g.Type)+"s")
	}

	intro := fmt.Sprintf("We've curated %d upcoming %s events%s for you, spanning %s. "+
		"Whether you're looking to learn, build, or connect with the %s community, there's something here for you.",
		len(rows), topic, place, joinList(names), topic)
	if free > 0 {
		intro += fmt.Sprintf(" %d of them are completely free.", free)
	}
	return intro
}

// joinList joins with commas and a final "and": "a", "a, and b", "a, b, and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return "events"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
