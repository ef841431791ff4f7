package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/flexnotes/flexnotes-go/internal/core/service"
	"github.com/flexnotes/flexnotes-go/internal/infra/buildinfo"
	"github.com/flexnotes/flexnotes-go/internal/infra/confloader"
	"github.com/flexnotes/flexnotes-go/internal/infra/shutdown"
	"github.com/flexnotes/flexnotes-go/internal/server/config"
	"github.com/flexnotes/flexnotes-go/internal/server/httpserver"
	"github.com/flexnotes/flexnotes-go/internal/storage"
	"github.com/flexnotes/flexnotes-go/internal/storage/docstore"
	"github.com/flexnotes/flexnotes-go/internal/storage/memory"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/logger"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "flexnotes-server",
		Usage:   "personal note and todo service",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"FLEXNOTES_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"), c.String("addr"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, addrOverride string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addrOverride != "" {
		cfg.Server.HTTP.Addr = addrOverride
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting flexnotes-server",
		"version", info.Version,
		"commit", info.Commit,
		"backend", cfg.Storage.Backend,
	)

	metrics := metric.New()
	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	repos, err := buildRepositories(cfg, log, metrics, shutdownHandler)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	tokenSvc := service.NewTokenService([]byte(cfg.Auth.Secret),
		service.WithAccessTTL(cfg.Auth.AccessTTL),
		service.WithRefreshTTL(cfg.Auth.RefreshTTL),
	)
	authSvc := service.NewAuthService(repos.users, tokenSvc, log)
	noteSvc := service.NewNoteService(repos.notes, repos.lists, log)
	listSvc := service.NewTodoListService(repos.lists, log)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		AuthService:     authSvc,
		NoteService:     noteSvc,
		TodoListService: listSvc,
		Metrics:         metrics,
		Logger:          log,
		RateLimit:       cfg.Server.RateLimit,
	})

	srv := httpserver.New(cfg.Server.HTTP, router)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return srv.Shutdown(ctx)
	})

	if configFile != "" {
		stopWatch, err := watchConfig(configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return stopWatch()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig merges defaults, the optional config file, and
// FLEXNOTES_* environment variables, then validates the result.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// repositories groups the three persistence interfaces behind one
// backend choice.
type repositories struct {
	users service.UserRepository
	notes service.NoteRepository
	lists service.TodoListRepository
}

func buildRepositories(cfg *config.ServerConfig, log *slog.Logger, metrics *metric.Metrics, sh *shutdown.Handler) (*repositories, error) {
	switch cfg.Storage.Backend {
	case "memory":
		log.Warn("using the volatile in-memory backend; data is lost on restart")
		return &repositories{
			users: memory.NewUserStore(),
			notes: memory.NewNoteStore(),
			lists: memory.NewTodoListStore(),
		}, nil

	case "badger":
		kvCfg := storage.DefaultKVConfig(cfg.Storage.DataDir)
		if cfg.Storage.GCInterval > 0 {
			kvCfg.Badger.GCInterval = cfg.Storage.GCInterval.String()
		}
		if cfg.Storage.EncryptionKey != "" {
			kvCfg.Badger.EncryptionKey = []byte(cfg.Storage.EncryptionKey)
		}

		engine, err := storage.NewBadgerEngine(kvCfg, log)
		if err != nil {
			return nil, err
		}
		engine.RegisterMetrics(metrics.Registry())
		sh.OnShutdown(func(context.Context) error {
			log.Info("closing storage engine")
			return engine.Close()
		})

		return &repositories{
			users: docstore.NewUserStore(engine),
			notes: docstore.NewNoteStore(engine, log),
			lists: docstore.NewTodoListStore(engine),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// watchConfig reloads the log level when the config file changes.
// Other settings need a restart.
func watchConfig(path string, log *slog.Logger) (func() error, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(changed string) {
		cfg := config.Default()
		if err := confloader.NewLoader(confloader.WithConfigFile(changed)).Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "from", logger.GetLevel(), "to", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})
	watcher.StartAsync()

	return watcher.Stop, nil
}
