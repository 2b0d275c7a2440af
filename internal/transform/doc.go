// Package transform turns fetched events into display-ready records.
//
// The pipeline always runs in the same order: Filter drops cancelled and past
// events, Sort orders what is left, and Enrich derives the display fields
// (price, date, location and event type) for each survivor. None of the stages
// modify their input; parse problems fall back to a readable default instead of
// failing the run.
package transform
