package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/core/service"
	"github.com/flexnotes/flexnotes-go/internal/server/httpserver/handler"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/metric"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together. The first middleware in
// the list is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID assigns each request a ULID, unless the client already
// sent one in X-Request-ID. The ID is echoed in the response and
// placed in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = domain.NewID()
			}

			w.Header().Set("X-Request-ID", requestID)
			ctx := handler.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recover catches panics in downstream handlers and turns them into a
// JSON 500.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger != nil {
						logger.Error("panic in handler",
							"panic", rec,
							"method", r.Method,
							"path", r.URL.Path,
						)
					}
					writeMiddlewareError(w, http.StatusInternalServerError, domain.ErrInternal.Code, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS adds Cross-Origin Resource Sharing headers and answers
// preflight requests. An empty origin list allows all origins.
func CORS(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := len(allowedOrigins) == 0
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ipLimiter tracks a token bucket per client IP. Buckets idle past the
// prune window are discarded.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipBucket
	rps      rate.Limit
	burst    int
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const ipLimiterPruneAfter = 10 * time.Minute

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*ipBucket),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.limiters[ip]
	if !ok {
		l.prune()
		b = &ipBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// prune drops buckets not seen recently. Called with the lock held.
func (l *ipLimiter) prune() {
	cutoff := time.Now().Add(-ipLimiterPruneAfter)
	for ip, b := range l.limiters {
		if b.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit limits requests per client IP. It guards the credential
// endpoints against brute forcing.
func RateLimit(rps float64, burst int) Middleware {
	limiter := newIPLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(getClientIP(r)) {
				w.Header().Set("Retry-After", "1")
				writeMiddlewareError(w, http.StatusTooManyRequests, "FN-SYS-4290", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Auth verifies the bearer token on business endpoints and places the
// resolved user in the request context. A request without a bearer
// token is a 400 with the missing-credentials code; a request with a
// bad token is a generic 401.
func Auth(authSvc *service.AuthService, metrics *metric.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if metrics != nil {
					metrics.AuthFailures.Inc()
				}
				writeMiddlewareError(w, http.StatusBadRequest, domain.ErrMissingCredentials.Code, "missing bearer token")
				return
			}

			user, err := authSvc.Authenticate(r.Context(), token)
			if err != nil {
				if metrics != nil {
					metrics.AuthFailures.Inc()
				}
				writeMiddlewareError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Code, "unauthorized")
				return
			}

			ctx := handler.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..."
// header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// Observe logs each request and records it in the Prometheus
// registry. The route label is the mux pattern, not the raw path, to
// keep metric cardinality bounded.
func Observe(logger *slog.Logger, metrics *metric.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			route := r.Pattern
			if route == "" {
				route = r.URL.Path
			}

			if metrics != nil {
				metrics.ObserveRequest(r.Method, route, rw.statusCode, elapsed)
			}
			if logger != nil {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", rw.statusCode,
					"duration_ms", elapsed.Milliseconds(),
					"client_ip", getClientIP(r),
					"request_id", handler.RequestIDFromContext(r.Context()),
				)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// writeMiddlewareError writes an error envelope from middleware, where
// no handler context is available.
func writeMiddlewareError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// getClientIP extracts the client IP from the request, preferring
// proxy headers over the socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
