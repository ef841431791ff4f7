// Package handler implements the HTTP API endpoints for flexnotes:
// credential operations, notes, todo lists, and pinning.
//
// Handlers translate between JSON request/response bodies and the
// service layer; domain error codes decide the HTTP status at this
// boundary and nowhere else.
package handler
