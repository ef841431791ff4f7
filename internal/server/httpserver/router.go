package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/flexnotes/flexnotes-go/internal/core/service"
	"github.com/flexnotes/flexnotes-go/internal/server/config"
	"github.com/flexnotes/flexnotes-go/internal/server/httpserver/handler"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/metric"
)

// RouterConfig holds the dependencies and settings for the HTTP
// router.
type RouterConfig struct {
	// AuthService handles registration, login, and token checks.
	AuthService *service.AuthService

	// NoteService handles note operations and pinning.
	NoteService *service.NoteService

	// TodoListService handles todo list and todo operations.
	TodoListService *service.TodoListService

	// Metrics records request metrics and serves /metrics. Optional.
	Metrics *metric.Metrics

	// Logger for request and error logging.
	Logger *slog.Logger

	// RateLimit guards the credential endpoints.
	RateLimit config.RateLimitConfig

	// CORSAllowedOrigins lists allowed CORS origins (empty = allow
	// all).
	CORSAllowedOrigins []string
}

// NewRouter builds the full HTTP handler: routes, middleware chains,
// and infra endpoints.
//
// Three chains exist. Credential endpoints get rate limiting but no
// auth. Business endpoints get bearer auth. Infra endpoints get
// neither.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.AuthService, cfg.NoteService, cfg.TodoListService, cfg.Metrics, cfg.Logger)

	base := []Middleware{
		Recover(cfg.Logger),
		CORS(cfg.CORSAllowedOrigins),
		RequestID(),
		Observe(cfg.Logger, cfg.Metrics),
	}

	credentialMiddlewares := base
	if cfg.RateLimit.Enabled {
		credentialMiddlewares = append(append([]Middleware{}, base...),
			RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	credentialHandler := Chain(h, credentialMiddlewares...)

	businessHandler := Chain(h, append(append([]Middleware{}, base...),
		Auth(cfg.AuthService, cfg.Metrics))...)

	infraHandler := Chain(h, base...)

	mux := http.NewServeMux()

	// Credential endpoints: no bearer token yet, rate limited.
	mux.Handle("POST /auth/register", credentialHandler)
	mux.Handle("POST /auth/login", credentialHandler)
	mux.Handle("POST /auth/refresh", credentialHandler)

	// Token probe; a 200 means the bearer token is good.
	mux.Handle("GET /auth/check", businessHandler)

	// Note endpoints.
	mux.Handle("POST /notes", businessHandler)
	mux.Handle("GET /notes", businessHandler)
	mux.Handle("GET /notes/{id}", businessHandler)
	mux.Handle("PUT /notes/{id}", businessHandler)
	mux.Handle("DELETE /notes/{id}", businessHandler)
	mux.Handle("GET /notes/{id}/todolists", businessHandler)
	mux.Handle("POST /notes/{id}/pin/{list_id}", businessHandler)
	mux.Handle("DELETE /notes/{id}/pin/{list_id}", businessHandler)

	// Todo list endpoints.
	mux.Handle("POST /todolists", businessHandler)
	mux.Handle("GET /todolists", businessHandler)
	mux.Handle("GET /todolists/{id}", businessHandler)
	mux.Handle("PATCH /todolists/{id}", businessHandler)
	mux.Handle("DELETE /todolists/{id}", businessHandler)
	mux.Handle("POST /todolists/{id}/todos", businessHandler)
	mux.Handle("PUT /todolists/{id}/todos/{todo_id}", businessHandler)
	mux.Handle("DELETE /todolists/{id}/todos/{todo_id}", businessHandler)

	// Infra endpoints.
	mux.Handle("GET /health", infraHandler)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	return mux
}
