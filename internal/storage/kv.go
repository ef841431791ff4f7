// Package storage provides the embedded key-value layer backing the
// document repositories.
package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// Tx exposes the operations available inside a storage transaction.
// Implementations are not safe for use outside the callback that
// received them.
type Tx interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound if the key
	// doesn't exist.
	Get(key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(key, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key []byte) error

	// Scan iterates over keys with the given prefix in key order. The
	// callback returns false to stop iteration.
	Scan(prefix []byte, fn func(key, value []byte) bool) error
}

// KVEngine is an embedded key-value store with transactional access.
//
// View runs a read-only transaction; Update runs a read-write
// transaction that commits when the callback returns nil and discards
// otherwise. Everything a callback reads and writes happens
// atomically, which is what the document repositories rely on for
// read-modify-write operations.
type KVEngine interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Close gracefully shuts down the engine.
	Close() error
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Dir is the storage directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps all data in memory, used by tests and the dev
	// profile.
	InMemory bool

	// Badger holds Badger-specific tuning parameters.
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic value log GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 64MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 256MB
	ValueLogFileSize int64

	// SyncWrites enables fsync after each write.
	// Default: true; notes are user data with no other durability.
	SyncWrites bool

	// EncryptionKey enables at-rest encryption when set. Must be 16,
	// 24, or 32 bytes (AES-128/192/256).
	EncryptionKey []byte
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        64 << 20,
		ValueLogFileSize: 256 << 20,
		SyncWrites:       true,
	}
}
