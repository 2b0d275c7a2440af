// Package cli implements the command-line interface for event-extractor.
//
// The root command searches Eventbrite, runs the transform pipeline and writes
// the results as JSON, CSV and optionally an HTML newsletter and an iCalendar
// feed. The get subcommand prints a single enriched event, and render rebuilds
// the newsletter from a previously exported events.json. Logs go to stderr as
// JSON lines tagged with a per-run ID; stdout carries only command output.
package cli
