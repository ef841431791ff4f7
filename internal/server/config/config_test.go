package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) *ServerConfig {
	t.Helper()
	cfg := Default()
	cfg.Auth.Secret = "a-signing-secret"
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestVerify(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		if err := Verify(validConfig(t)); err != nil {
			t.Errorf("Verify: %v", err)
		}
	})

	t.Run("missing auth secret is fatal", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Auth.Secret = ""
		if err := Verify(cfg); err == nil {
			t.Error("Verify should fail without auth.secret")
		}
	})

	t.Run("refresh ttl must exceed access ttl", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Auth.RefreshTTL = cfg.Auth.AccessTTL
		if err := Verify(cfg); err == nil {
			t.Error("Verify should fail when refresh_ttl <= access_ttl")
		}
	})

	t.Run("badger backend requires data dir", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.DataDir = ""
		if err := Verify(cfg); err == nil {
			t.Error("Verify should fail without storage.data_dir")
		}
	})

	t.Run("memory backend needs no data dir", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.Backend = "memory"
		cfg.Storage.DataDir = ""
		if err := Verify(cfg); err != nil {
			t.Errorf("Verify: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.Backend = "mongodb"
		if err := Verify(cfg); err == nil {
			t.Error("Verify should reject unknown backends")
		}
	})

	t.Run("encryption key length", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.EncryptionKey = "too-short"
		if err := Verify(cfg); err == nil {
			t.Error("Verify should reject a 9-byte encryption key")
		}

		cfg = validConfig(t)
		cfg.Storage.EncryptionKey = "0123456789abcdef0123456789abcdef"
		if err := Verify(cfg); err != nil {
			t.Errorf("32-byte key: %v", err)
		}
	})

	t.Run("rate limit bounds", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Server.RateLimit.RPS = 0
		if err := Verify(cfg); err == nil {
			t.Error("Verify should reject rps <= 0 when rate limiting is enabled")
		}

		cfg = validConfig(t)
		cfg.Server.RateLimit.Enabled = false
		cfg.Server.RateLimit.RPS = 0
		if err := Verify(cfg); err != nil {
			t.Errorf("disabled rate limit should skip bounds check: %v", err)
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Auth.Secret != "" {
		t.Error("the auth secret must not have a default")
	}
	if cfg.Auth.AccessTTL != 2*time.Hour {
		t.Errorf("AccessTTL = %v, want 2h", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.RefreshTTL != 48*time.Hour {
		t.Errorf("RefreshTTL = %v, want 48h", cfg.Auth.RefreshTTL)
	}
	if cfg.Storage.Backend != "badger" {
		t.Errorf("Backend = %q, want badger", cfg.Storage.Backend)
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Auth.Secret = "super-secret-signing-key"

	sanitized := Sanitize(cfg)
	if sanitized.Auth.Secret == cfg.Auth.Secret {
		t.Error("Sanitize should mask the auth secret")
	}
	if !strings.Contains(sanitized.Auth.Secret, "*") {
		t.Errorf("masked secret = %q, want asterisks", sanitized.Auth.Secret)
	}
	// Original must stay untouched.
	if cfg.Auth.Secret != "super-secret-signing-key" {
		t.Error("Sanitize must not mutate its input")
	}
}
