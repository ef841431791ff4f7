// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for flexnotes-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Auth    AuthSection    `koanf:"auth"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP      HTTPConfig      `koanf:"http"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RateLimitConfig configures the per-client rate limit applied to the
// credential endpoints.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// StorageSection configures the persistence backend.
type StorageSection struct {
	// Backend selects the storage backend ("badger" or "memory").
	Backend string `koanf:"backend"`

	// DataDir is the Badger data directory. Required for the badger
	// backend.
	DataDir string `koanf:"data_dir"`

	// GCInterval is the interval between Badger value log GC runs.
	GCInterval time.Duration `koanf:"gc_interval"`

	// EncryptionKey enables at-rest encryption of the badger backend
	// when set. Must be 16, 24, or 32 bytes.
	EncryptionKey string `koanf:"encryption_key"`
}

// AuthSection configures token issuance.
type AuthSection struct {
	// Secret is the HMAC signing secret for access and refresh
	// tokens. The server refuses to start without it.
	Secret string `koanf:"secret"`

	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration `koanf:"access_ttl"`

	// RefreshTTL is the refresh token lifetime.
	RefreshTTL time.Duration `koanf:"refresh_ttl"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
