// Package export writes events and enriched records to flat files.
//
// JSON output is an indented array; CSV output has one row per record with a
// fixed column order and tags joined by ", ". Both writers create missing
// parent directories and expand a leading "~/" to the user's home directory.
package export
