// Package config provides server configuration for FlexNotes.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default configuration values
//   - verify.go: validation (auth secret presence, backend selection)
//   - sanitize.go: log sanitization (mask the signing secret)
//
// Configuration is loaded via internal/infra/confloader from a YAML
// file and FLEXNOTES_-prefixed environment variables.
package config
