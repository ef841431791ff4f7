// Package confloader provides configuration loading for FlexNotes.
//
// It merges a YAML file and FLEXNOTES_-prefixed environment variables
// through koanf, environment winning, and can watch the file for
// changes at runtime.
package confloader
