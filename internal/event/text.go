package event

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup and entities from an API text field and collapses
// runs of whitespace. Text that fails to parse is returned trimmed.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	// Block elements would otherwise glue neighbouring words together.
	doc.Find("br, p, li, div").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
