package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

// WriteJSON writes records to path as an indented JSON array and returns the
// path actually written. A nil or empty slice produces "[]".
func WriteJSON[T any](path string, records []T) (string, error) {
	path, err := Prepare(path)
	if err != nil {
		return "", err
	}
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("Exported JSON", logger.Fields{"count": len(records), "path": path})
	return path, nil
}

// ReadEnriched loads records previously written by WriteJSON.
func ReadEnriched(path string) ([]transform.Enriched, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rows []transform.Enriched
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if rows == nil {
		rows = []transform.Enriched{}
	}
	return rows, nil
}
