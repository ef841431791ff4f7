// Package shutdown provides graceful shutdown for FlexNotes.
//
// It listens for SIGINT/SIGTERM and runs registered cleanup hooks in
// reverse order under a shared deadline, so the HTTP server drains
// before the storage engine closes.
package shutdown
