package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/core/service"
	"github.com/flexnotes/flexnotes-go/internal/server/config"
	"github.com/flexnotes/flexnotes-go/internal/storage/memory"
	"github.com/flexnotes/flexnotes-go/internal/telemetry/metric"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens := service.NewTokenService([]byte("router-test-secret"))
	authSvc := service.NewAuthService(memory.NewUserStore(), tokens, nil)
	lists := memory.NewTodoListStore()
	noteSvc := service.NewNoteService(memory.NewNoteStore(), lists, nil)
	listSvc := service.NewTodoListService(lists, nil)

	return NewRouter(&RouterConfig{
		AuthService:     authSvc,
		NoteService:     noteSvc,
		TodoListService: listSvc,
		Metrics:         metric.New(),
		RateLimit:       config.RateLimitConfig{Enabled: false},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func field(t *testing.T, rec *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	s, _ := m[key].(string)
	return s
}

// TestUserJourney drives the full lifecycle through the router:
// register, conflicting re-register, login, create a note and a list,
// pin, and unpin.
func TestUserJourney(t *testing.T) {
	router := newTestRouter(t)

	creds := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse battery staple",
	}

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d (body %q)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/register", "", creds)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "correct horse battery staple",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d (body %q)", rec.Code, rec.Body.String())
	}
	token := field(t, rec, "access_token")
	if token == "" {
		t.Fatal("login response has no access token")
	}

	rec = doJSON(t, router, http.MethodGet, "/auth/check", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("auth check: status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/notes", token, map[string]any{
		"title":   "trip planning",
		"content": "pack on thursday",
		"tags":    []string{"travel"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note: status = %d (body %q)", rec.Code, rec.Body.String())
	}
	noteID := field(t, rec, "id")

	rec = doJSON(t, router, http.MethodPost, "/todolists", token, map[string]string{
		"title": "packing list",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list: status = %d (body %q)", rec.Code, rec.Body.String())
	}
	listID := field(t, rec, "id")

	rec = doJSON(t, router, http.MethodPost, "/notes/"+noteID+"/pin/"+listID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("pin: status = %d (body %q)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/notes/"+noteID+"/todolists", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pinned lists: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), listID) {
		t.Errorf("pinned lists body %q does not mention %s", rec.Body.String(), listID)
	}

	rec = doJSON(t, router, http.MethodDelete, "/notes/"+noteID+"/pin/"+listID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unpin: status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/notes/"+noteID+"/pin/"+listID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unpin of unpinned list: status = %d, want 404", rec.Code)
	}
}

func TestRouterAuthGate(t *testing.T) {
	router := newTestRouter(t)

	protected := []struct {
		method, path string
	}{
		{http.MethodGet, "/auth/check"},
		{http.MethodGet, "/notes"},
		{http.MethodPost, "/notes"},
		{http.MethodGet, "/notes/some-id"},
		{http.MethodGet, "/todolists"},
		{http.MethodPost, "/todolists/some-id/todos"},
	}

	for _, tc := range protected {
		rec := doJSON(t, router, tc.method, tc.path, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s without token: status = %d, want 400", tc.method, tc.path, rec.Code)
		}
		if got := rec.Header().Get("X-Error-Code"); got != domain.ErrMissingCredentials.Code {
			t.Errorf("%s %s without token: X-Error-Code = %q, want %q", tc.method, tc.path, got, domain.ErrMissingCredentials.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/notes", "not.a.token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /notes with bad token: status = %d, want 401", rec.Code)
	}
}

func TestRouterInfraEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health is open", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("health: status = %d, want 200", rec.Code)
		}
	})

	t.Run("metrics is open and textual", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/metrics", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("metrics: status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "go_goroutines") {
			t.Error("metrics output lacks runtime collectors")
		}
	})
}

func TestRouterRateLimit(t *testing.T) {
	tokens := service.NewTokenService([]byte("router-test-secret"))
	authSvc := service.NewAuthService(memory.NewUserStore(), tokens, nil)
	lists := memory.NewTodoListStore()

	router := NewRouter(&RouterConfig{
		AuthService:     authSvc,
		NoteService:     service.NewNoteService(memory.NewNoteStore(), lists, nil),
		TodoListService: service.NewTodoListService(lists, nil),
		RateLimit:       config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2},
	})

	var last int
	for i := 0; i < 5; i++ {
		rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "alice", "password": "whatever",
		})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("fifth rapid login attempt: status = %d, want 429", last)
	}
}
