// Package httpserver provides the HTTP server for flexnotes.
//
// It builds on the standard library net/http mux with method-and-path
// patterns, composing per-route middleware chains for request IDs,
// panic recovery, CORS, per-IP rate limiting on the credential
// endpoints, bearer-token auth on business endpoints, and request
// observation (structured logs plus Prometheus metrics).
package httpserver
