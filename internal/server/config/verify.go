package config

import (
	"errors"
	"fmt"
	"os"
)

// Verify validates the configuration. A missing auth secret is fatal:
// the server must never fall back to a baked-in signing key.
func Verify(cfg *ServerConfig) error {
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyRateLimit(&cfg.Server.RateLimit); err != nil {
		return err
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.Secret == "" {
		return errors.New("auth.secret is required (set FLEXNOTES_AUTH_SECRET)")
	}
	if cfg.AccessTTL <= 0 {
		return errors.New("auth.access_ttl must be positive")
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return errors.New("auth.refresh_ttl must exceed auth.access_ttl")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Backend {
	case "badger":
		if cfg.DataDir == "" {
			return errors.New("storage.data_dir is required for the badger backend")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
			return fmt.Errorf("cannot create data directory: %w", err)
		}
		switch len(cfg.EncryptionKey) {
		case 0, 16, 24, 32:
		default:
			return fmt.Errorf("storage.encryption_key must be 16, 24, or 32 bytes, got %d", len(cfg.EncryptionKey))
		}
	case "memory":
		// Nothing to verify; data is volatile.
	default:
		return fmt.Errorf("unknown storage.backend %q (want badger or memory)", cfg.Backend)
	}
	return nil
}

func verifyRateLimit(cfg *RateLimitConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RPS <= 0 {
		return errors.New("server.rate_limit.rps must be positive")
	}
	if cfg.Burst < 1 {
		return errors.New("server.rate_limit.burst must be at least 1")
	}
	return nil
}
