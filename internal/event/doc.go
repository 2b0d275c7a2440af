// Package event provides the canonical Event record and its construction from
// Eventbrite API payloads.
//
// An Event is built once per unique result returned by the remote API and is
// treated as read-only afterwards. Optional attributes are pointers so that an
// absent value can be told apart from an empty one; helpers in this package
// parse the raw date and time strings without ever failing the caller.
package event
