// Package eventbrite provides an authenticated client for the Eventbrite v3 API.
//
// The client searches public events through the destination/search endpoint,
// following continuation tokens one page at a time and dropping results whose
// ID was already returned earlier in the same search. Requests that receive
// HTTP 429 are retried after the server's Retry-After delay or an exponential
// backoff; every other failure is returned to the caller unchanged.
//
// Each Client owns its HTTP client and credential, so independent instances
// never share retry, pagination or dedup state.
package eventbrite
