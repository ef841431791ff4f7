// Package cmap provides a concurrent-safe generic map sharded across
// multiple locks to reduce contention under parallel access.
package cmap
