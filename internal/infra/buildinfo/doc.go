// Package buildinfo provides build information for FlexNotes.
//
// Version, commit and build time are injected via ldflags:
//
//	go build -ldflags "-X .../internal/infra/buildinfo.Version=1.0.0"
package buildinfo
