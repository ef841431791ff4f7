package docstore

import (
	"testing"

	"github.com/flexnotes/flexnotes-go/internal/storage"
)

func newTestEngine(t *testing.T) storage.KVEngine {
	t.Helper()

	cfg := storage.DefaultKVConfig("")
	cfg.InMemory = true

	engine, err := storage.NewBadgerEngine(cfg, nil)
	if err != nil {
		t.Fatalf("NewBadgerEngine: %v", err)
	}
	t.Cleanup(func() {
		if err := engine.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return engine
}
