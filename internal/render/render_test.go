package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func row(id, title, eventType, price string, summary *string) transform.Enriched {
	return transform.Enriched{
		Event: event.Event{
			ID:      id,
			Title:   title,
			Summary: summary,
			URL:     event.StringPtr("https://example.com/" + id),
		},
		DisplayDate:     "Wed, Mar 4 at 10:00 AM",
		DisplayLocation: "Javits Center",
		DisplayPrice:    price,
		EventType:       eventType,
	}
}

func sampleRows() []transform.Enriched {
	return []transform.Enriched{
		row("1", "AI Summit NYC", "Conference", "Free", event.StringPtr("A big AI conference.")),
		row("2", "Hands-On ML Workshop", "Workshop", "$50 USD", event.StringPtr("Build ML models.")),
		row("3", "AI Networking Mixer", "Meetup", "Free", nil),
		row("4", "Deep Learning Talk", "Talk", "Free", event.StringPtr("Expert panel.")),
	}
}

func TestGroupByType_Order(t *testing.T) {
	rows := append(sampleRows(),
		row("5", "Zine Fair", "Zebra", "Free", nil),
		row("6", "Art Show", "Exhibit", "Free", nil),
		row("7", "Untyped", "", "Free", nil),
		row("8", "Second Conference", "Conference", "Paid", nil),
	)

	groups := GroupByType(rows)

	var types []string
	for _, g := range groups {
		types = append(types, g.Type)
	}
	assert.Equal(t, []string{"Conference", "Workshop", "Talk", "Meetup", "Event", "Exhibit", "Zebra"}, types)

	require.Len(t, groups[0].Events, 2)
	assert.Equal(t, "1", groups[0].Events[0].ID, "rows keep their order within a group")
	assert.Equal(t, "8", groups[0].Events[1].ID)
	assert.Equal(t, "7", groups[4].Events[0].ID)
}

func TestGroupByType_Empty(t *testing.T) {
	assert.Empty(t, GroupByType(nil))
}

func TestNewsletter(t *testing.T) {
	html, err := Newsletter(sampleRows(), Options{Now: testNow})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, doc.Find("header h1").Text())
	assert.Equal(t, "March 2026", doc.Find("header .subtitle").Text())

	var sections []string
	doc.Find("section.group").Each(func(_ int, s *goquery.Selection) {
		sections = append(sections, s.AttrOr("data-type", ""))
	})
	assert.Equal(t, []string{"Conference", "Workshop", "Talk", "Meetup"}, sections)

	assert.Equal(t, 4, doc.Find("article.event").Length())
	link := doc.Find(`article[data-id="2"] h3 a`)
	assert.Equal(t, "Hands-On ML Workshop", link.Text())
	assert.Equal(t, "https://example.com/2", link.AttrOr("href", ""))
	assert.Equal(t, 3, doc.Find(".price.free").Length())
	assert.Equal(t, 0, doc.Find(`article[data-id="3"] .summary`).Length(), "no summary paragraph when summary is absent")

	assert.Contains(t, doc.Find("footer").Text(), "March 01, 2026")
}

func TestNewsletter_EscapesContent(t *testing.T) {
	rows := []transform.Enriched{
		row("1", "<script>alert(1)</script>", "Talk", "Free", event.StringPtr("Tom & Jerry")),
	}

	html, err := Newsletter(rows, Options{Title: "Events & More", Now: testNow})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Events &amp; More")
}

func TestNewsletter_CustomText(t *testing.T) {
	html, err := Newsletter(sampleRows(), Options{
		Title:    "Weekly Picks",
		Subtitle: "Issue 7",
		Intro:    "Hello readers.",
		Now:      testNow,
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "Weekly Picks", doc.Find("header h1").Text())
	assert.Equal(t, "Issue 7", doc.Find("header .subtitle").Text())
	assert.Equal(t, "Hello readers.", doc.Find(".intro").Text())
}

func TestNewsletter_Empty(t *testing.T) {
	html, err := Newsletter(nil, Options{Now: testNow})
	require.NoError(t, err)
	assert.Contains(t, html, "spanning events.")
	assert.NotContains(t, html, "<article")
}

func TestIntro(t *testing.T) {
	rows := sampleRows()
	intro := Intro(rows, GroupByType(rows), "", "")

	assert.Equal(t, "We've curated 4 upcoming AI events in New York City for you, spanning "+
		"conferences, workshops, talks, and meetups. Whether you're looking to learn, build, "+
		"or connect with the AI community, there's something here for you. 3 of them are completely free.", intro)
}

func TestIntro_PlaceAndTopic(t *testing.T) {
	rows := []transform.Enriched{row("1", "Rust Meetup", "Meetup", "$10 USD", nil)}

	assert.Equal(t, "We've curated 1 upcoming Rust events for you, spanning meetups. "+
		"Whether you're looking to learn, build, or connect with the Rust community, there's something here for you.",
		Intro(rows, GroupByType(rows), "Rust", "-"))

	assert.Contains(t, Intro(rows, GroupByType(rows), "Rust", "Berlin"), "Rust events in Berlin for you")
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "events", joinList(nil))
	assert.Equal(t, "talks", joinList([]string{"talks"}))
	assert.Equal(t, "talks, and meetups", joinList([]string{"talks", "meetups"}))
	assert.Equal(t, "a, b, and c", joinList([]string{"a", "b", "c"}))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "newsletter.html")

	written, err := WriteFile(path, sampleRows(), Options{Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}
