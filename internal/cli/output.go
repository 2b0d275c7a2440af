package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

const rule = 64

// writeSummary prints the human-readable list of extracted events
func writeSummary(w io.Writer, rows []transform.Enriched, rawCount int, query, location string) error {
	bar := strings.Repeat("=", rule)

	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintf(w, "  %d %s events in %s (from %d raw)\n", len(rows), query, location, rawCount)
	fmt.Fprintf(w, "%s\n\n", bar)

	for i, row := range rows {
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, row.EventType, row.Title)
		fmt.Fprintf(w, "     %s\n", row.DisplayDate)
		fmt.Fprintf(w, "     %s\n", row.DisplayLocation)
		fmt.Fprintf(w, "     %s\n", row.DisplayPrice)
		if url := event.Value(row.URL); url != "" {
			fmt.Fprintf(w, "     %s\n", url)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
