// Package metric provides Prometheus metrics for FlexNotes.
//
// It exposes HTTP request counts and latencies plus domain counters
// (registrations, notes, todo lists) under the flexnotes namespace.
package metric
