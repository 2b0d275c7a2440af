package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

// EventColumns is the CSV header for raw events; it follows the JSON field order.
var EventColumns = []string{
	"event_id", "title", "summary",
	"start_date", "start_time", "end_date", "end_time", "timezone",
	"is_online", "venue_name", "venue_address",
	"organizer_name", "organizer_id", "url",
	"is_free", "price", "currency",
	"category", "tags", "image_url",
	"is_cancelled", "published", "source_platform",
}

// EnrichedColumns is EventColumns followed by the display fields.
var EnrichedColumns = append(append([]string{}, EventColumns...),
	"display_price", "display_date", "display_location", "event_type")

// WriteCSV writes enriched records to path. The header is written even when
// rows is empty.
func WriteCSV(path string, rows []transform.Enriched) (string, error) {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		records = append(records, append(eventRow(&r.Event),
			r.DisplayPrice, r.DisplayDate, r.DisplayLocation, r.EventType))
	}
	return writeCSV(path, EnrichedColumns, records)
}

// WriteEventsCSV writes raw events to path using EventColumns.
func WriteEventsCSV(path string, events []*event.Event) (string, error) {
	records := make([][]string, 0, len(events))
	for _, e := range events {
		records = append(records, eventRow(e))
	}
	return writeCSV(path, EventColumns, records)
}

func writeCSV(path string, header []string, records [][]string) (string, error) {
	path, err := Prepare(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("writing rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	if len(records) == 0 {
		logger.Warn("No events to export", logger.Fields{"path": path})
	} else {
		logger.Info("Exported CSV", logger.Fields{"count": len(records), "path": path})
	}
	return path, nil
}

// eventRow renders e in EventColumns order; absent values are empty cells
func eventRow(e *event.Event) []string {
	v := event.Value
	return []string{
		e.ID, e.Title, v(e.Summary),
		v(e.StartDate), v(e.StartTime), v(e.EndDate), v(e.EndTime), v(e.Timezone),
		strconv.FormatBool(e.IsOnline), v(e.VenueName), v(e.VenueAddress),
		v(e.OrganizerName), v(e.OrganizerID), v(e.URL),
		strconv.FormatBool(e.IsFree), v(e.Price), v(e.Currency),
		v(e.Category), strings.Join(e.Tags, ", "), v(e.ImageURL),
		strconv.FormatBool(e.IsCancelled), v(e.Published), e.SourcePlatform,
	}
}
