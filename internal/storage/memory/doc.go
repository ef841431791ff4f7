// Package memory provides volatile in-memory implementations of the
// service repository interfaces, used by tests and the dev profile.
// Data does not survive a restart.
package memory
