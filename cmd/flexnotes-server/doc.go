// Package main provides the entry point for flexnotes-server.
//
// flexnotes-server is a personal note and todo service with JWT
// authentication and owner-scoped persistence over Badger.
package main
