package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerEngine implements KVEngine on top of Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	closed atomic.Bool

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsTotalSize    prometheus.Gauge

	stopCh        chan struct{}
	doneCh        chan struct{}
	metricsDoneCh chan struct{}
}

// NewBadgerEngine opens a Badger-backed KV engine.
func NewBadgerEngine(cfg KVConfig, logger *slog.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: logger}
	opts.InMemory = cfg.InMemory
	if cfg.InMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}

	badgerCfg := cfg.Badger
	opts.BlockCacheSize = badgerCfg.CacheSize
	opts.ValueLogFileSize = badgerCfg.ValueLogFileSize
	opts.SyncWrites = badgerCfg.SyncWrites && !cfg.InMemory

	if len(badgerCfg.EncryptionKey) > 0 {
		switch len(badgerCfg.EncryptionKey) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("badger: encryption key must be 16, 24, or 32 bytes, got %d", len(badgerCfg.EncryptionKey))
		}
		opts.EncryptionKey = badgerCfg.EncryptionKey
		// Badger requires an index cache when encryption is on.
		opts.IndexCacheSize = badgerCfg.CacheSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	engine := &BadgerEngine{
		db:     db,
		cfg:    badgerCfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go engine.gcLoop()

	logger.Info("badger engine started",
		"dir", cfg.Dir,
		"in_memory", cfg.InMemory,
		"gc_interval", badgerCfg.GCInterval)

	return engine, nil
}

// View runs a read-only transaction.
func (e *BadgerEngine) View(_ context.Context, fn func(tx Tx) error) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

// Update runs a read-write transaction. The transaction commits when
// fn returns nil and is discarded otherwise.
func (e *BadgerEngine) Update(_ context.Context, fn func(tx Tx) error) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

// Close stops the GC loop and closes the database.
func (e *BadgerEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(e.stopCh)
	<-e.doneCh
	if e.metricsDoneCh != nil {
		<-e.metricsDoneCh
	}

	if err := e.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	e.logger.Info("badger engine shutdown complete")
	return nil
}

// RegisterMetrics registers storage size gauges with Prometheus and
// starts the background updater. Call at most once.
func (e *BadgerEngine) RegisterMetrics(registry *prometheus.Registry) *BadgerEngine {
	e.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "flexnotes",
		Subsystem: "badger",
		Name:      "lsm_size_bytes",
		Help:      "Badger LSM tree size in bytes",
	})
	e.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "flexnotes",
		Subsystem: "badger",
		Name:      "value_log_size_bytes",
		Help:      "Badger value log size in bytes",
	})
	e.metricsTotalSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "flexnotes",
		Subsystem: "badger",
		Name:      "total_size_bytes",
		Help:      "Badger total storage size in bytes (LSM + value log)",
	})

	registry.MustRegister(e.metricsLSMSize, e.metricsValueLogSize, e.metricsTotalSize)

	e.metricsDoneCh = make(chan struct{})
	go e.metricsUpdateLoop()
	return e
}

// metricsUpdateLoop refreshes the size gauges until the engine closes.
// Close waits for it so no Size call races the db shutdown.
func (e *BadgerEngine) metricsUpdateLoop() {
	defer close(e.metricsDoneCh)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lsm, vlog := e.db.Size()
			e.metricsLSMSize.Set(float64(lsm))
			e.metricsValueLogSize.Set(float64(vlog))
			e.metricsTotalSize.Set(float64(lsm + vlog))
		case <-e.stopCh:
			return
		}
	}
}

// gcLoop runs periodic value log garbage collection.
func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	interval, err := time.ParseDuration(e.cfg.GCInterval)
	if err != nil {
		e.logger.Error("invalid gc_interval, using default 10m", "error", err)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for {
				err := e.db.RunValueLogGC(e.cfg.GCThreshold)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					e.logger.Error("value log gc failed", "error", err)
					break
				}
			}
		case <-e.stopCh:
			return
		}
	}
}

// badgerTx adapts badger.Txn to the Tx interface.
type badgerTx struct {
	txn *badger.Txn
}

func (t *badgerTx) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *badgerTx) Set(key, value []byte) error {
	return t.txn.Set(key, value)
}

func (t *badgerTx) Delete(key []byte) error {
	return t.txn.Delete(key)
}

func (t *badgerTx) Scan(prefix []byte, fn func(key, value []byte) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if !fn(item.KeyCopy(nil), value) {
			break
		}
	}
	return nil
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
