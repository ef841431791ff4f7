package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/core/service"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/metric"
)

// Context keys for request-scoped values shared with the middleware
// layer.
type contextKey string

const (
	// ContextKeyUser carries the authenticated *domain.User.
	ContextKeyUser contextKey = "user"

	// ContextKeyRequestID carries the request ID assigned by the
	// RequestID middleware.
	ContextKeyRequestID contextKey = "request_id"
)

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// UserFromContext retrieves the authenticated user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(ContextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// RequestIDFromContext retrieves the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// Handler routes API requests to the appropriate service calls.
type Handler struct {
	authSvc *service.AuthService
	noteSvc *service.NoteService
	listSvc *service.TodoListService
	metrics *metric.Metrics
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New creates a Handler wired to the given services. The metrics may
// be nil.
func New(authSvc *service.AuthService, noteSvc *service.NoteService, listSvc *service.TodoListService, metrics *metric.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		authSvc: authSvc,
		noteSvc: noteSvc,
		listSvc: listSvc,
		metrics: metrics,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	// Credential endpoints. Unauthenticated; the router rate-limits
	// them.
	h.mux.HandleFunc("POST /auth/register", h.handleRegister)
	h.mux.HandleFunc("POST /auth/login", h.handleLogin)
	h.mux.HandleFunc("POST /auth/refresh", h.handleRefresh)
	h.mux.HandleFunc("GET /auth/check", h.handleAuthCheck)

	// Note endpoints.
	h.mux.HandleFunc("POST /notes", h.handleCreateNote)
	h.mux.HandleFunc("GET /notes", h.handleListNotes)
	h.mux.HandleFunc("GET /notes/{id}", h.handleGetNote)
	h.mux.HandleFunc("PUT /notes/{id}", h.handleUpdateNote)
	h.mux.HandleFunc("DELETE /notes/{id}", h.handleDeleteNote)
	h.mux.HandleFunc("GET /notes/{id}/todolists", h.handlePinnedLists)
	h.mux.HandleFunc("POST /notes/{id}/pin/{list_id}", h.handlePinNote)
	h.mux.HandleFunc("DELETE /notes/{id}/pin/{list_id}", h.handleUnpinNote)

	// Todo list endpoints.
	h.mux.HandleFunc("POST /todolists", h.handleCreateTodoList)
	h.mux.HandleFunc("GET /todolists", h.handleListTodoLists)
	h.mux.HandleFunc("GET /todolists/{id}", h.handleGetTodoList)
	h.mux.HandleFunc("PATCH /todolists/{id}", h.handleRenameTodoList)
	h.mux.HandleFunc("DELETE /todolists/{id}", h.handleDeleteTodoList)
	h.mux.HandleFunc("POST /todolists/{id}/todos", h.handleCreateTodo)
	h.mux.HandleFunc("PUT /todolists/{id}/todos/{todo_id}", h.handleModifyTodo)
	h.mux.HandleFunc("DELETE /todolists/{id}/todos/{todo_id}", h.handleDeleteTodo)

	h.mux.HandleFunc("GET /health", h.handleHealth)
}

// decode reads the JSON request body into v. A malformed or empty body
// maps to ErrBadRequest so callers can hand the error straight to
// handleServiceError.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ErrBadRequest.WithDetails("request body is required")
		}
		return domain.ErrBadRequest.WithDetails(err.Error())
	}
	return nil
}

// writeJSON writes a JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

// writeError writes an error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// handleServiceError converts service errors to HTTP responses. Domain
// errors map by code; anything else is logged and reported as an
// opaque internal error so storage details never reach the client.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) && de != nil {
		h.writeError(w, r, errorCodeToHTTPStatus(de.Code), de.Code, de.Error())
		return
	}

	h.logger.Error("internal error", "error", err, "path", r.URL.Path)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, "internal server error")
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"), strings.HasSuffix(code, "-4042"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"), strings.HasSuffix(code, "-4012"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4001"), strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "FN-ARG-"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// currentUser returns the authenticated user placed in the context by
// the auth middleware. Business handlers are only reachable through
// that middleware, so a missing user is a programming error; it is
// reported as unauthorized rather than a panic.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user := UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, http.StatusUnauthorized, domain.ErrUnauthorized.Code, "unauthorized")
		return nil, false
	}
	return user, true
}
