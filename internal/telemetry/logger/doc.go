// Package logger provides structured logging for FlexNotes.
//
// It wraps log/slog with JSON output, automatic redaction of
// credential-shaped attributes, a globally adjustable level, and
// request-id propagation through the context.
package logger
