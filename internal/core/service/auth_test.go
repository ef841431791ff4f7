package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// mockUserRepo is an in-memory UserRepository keyed by username.
type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Get(_ context.Context, username string) (*domain.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (m *mockUserRepo) Exists(_ context.Context, username, email string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.Username] = user.Clone()
	return nil
}

func newTestAuthService() (*AuthService, *mockUserRepo, *TokenService) {
	repo := newMockUserRepo()
	tokens := NewTokenService(testSecret)
	return NewAuthService(repo, tokens, nil), repo, tokens
}

func TestAuthService_Register(t *testing.T) {
	t.Run("register issues tokens", func(t *testing.T) {
		svc, repo, tokens := newTestAuthService()

		resp, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice",
			Email:    "alice@x.com",
			Password: "pw123",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.User.ID == "" {
			t.Error("registered user should have an id")
		}
		if resp.User.PasswordHash == "pw123" {
			t.Fatal("plaintext password stored as hash")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("pw123")); err != nil {
			t.Errorf("stored hash does not verify the password: %v", err)
		}

		claims, err := tokens.Verify(resp.Tokens.AccessToken)
		if err != nil {
			t.Fatalf("Verify(access) failed: %v", err)
		}
		if claims.Subject != "alice" {
			t.Errorf("token subject = %q, want alice", claims.Subject)
		}

		if _, ok := repo.users["alice"]; !ok {
			t.Error("user was not persisted")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		mustRegister(t, svc, "alice", "alice@x.com", "pw123")

		_, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice",
			Email:    "other@x.com",
			Password: "pw456",
		})
		if !errors.Is(err, domain.ErrUserExists) {
			t.Errorf("Register(dup username) error = %v, want ErrUserExists", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		mustRegister(t, svc, "alice", "alice@x.com", "pw123")

		_, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "bob",
			Email:    "alice@x.com",
			Password: "pw456",
		})
		if !errors.Is(err, domain.ErrUserExists) {
			t.Errorf("Register(dup email) error = %v, want ErrUserExists", err)
		}
	})

	t.Run("empty fields", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		for _, req := range []*RegisterRequest{
			{Username: "", Email: "a@x.com", Password: "pw"},
			{Username: "a", Email: "", Password: "pw"},
			{Username: "a", Email: "a@x.com", Password: ""},
		} {
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrMissingCredentials) {
				t.Errorf("Register(%+v) error = %v, want ErrMissingCredentials", req, err)
			}
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("correct credentials", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		mustRegister(t, svc, "alice", "alice@x.com", "pw123")

		resp, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "pw123"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		claims, err := tokens.Verify(resp.Tokens.AccessToken)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if claims.Subject != "alice" {
			t.Errorf("token subject = %q, want alice", claims.Subject)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		mustRegister(t, svc, "alice", "alice@x.com", "pw123")

		resp, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "wrong"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Login(wrong password) error = %v, want ErrUnauthorized", err)
		}
		if resp != nil {
			t.Error("failed login must not issue tokens")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "pw"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Login(unknown user) error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.Login(context.Background(), &LoginRequest{Username: "", Password: ""})
		if !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("Login(empty) error = %v, want ErrMissingCredentials", err)
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		refresh, _ := tokens.IssueRefreshToken("alice")

		pair, err := svc.Refresh(context.Background(), refresh)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		claims, err := tokens.Verify(pair.AccessToken)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if claims.Subject != "alice" {
			t.Errorf("subject = %q, want alice", claims.Subject)
		}
	})

	t.Run("expired refresh token reported distinctly", func(t *testing.T) {
		repo := newMockUserRepo()
		current := time.Now()
		tokens := NewTokenService(testSecret, WithClock(func() time.Time { return current }))
		svc := NewAuthService(repo, tokens, nil)

		refresh, _ := tokens.IssueRefreshToken("alice")
		current = current.Add(DefaultRefreshTTL + time.Hour)

		_, err := svc.Refresh(context.Background(), refresh)
		if !errors.Is(err, domain.ErrTokenExpired) {
			t.Errorf("Refresh(expired) error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("Refresh(\"\") error = %v, want ErrMissingCredentials", err)
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("valid token resolves the user", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		mustRegister(t, svc, "alice", "alice@x.com", "pw123")

		access, _ := tokens.IssueAccessToken("alice")
		user, err := svc.Authenticate(context.Background(), access)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("resolved user = %q, want alice", user.Username)
		}
	})

	t.Run("expired token is a generic unauthorized", func(t *testing.T) {
		repo := newMockUserRepo()
		current := time.Now()
		tokens := NewTokenService(testSecret, WithClock(func() time.Time { return current }))
		svc := NewAuthService(repo, tokens, nil)

		access, _ := tokens.IssueAccessToken("alice")
		current = current.Add(DefaultAccessTTL + time.Hour)

		_, err := svc.Authenticate(context.Background(), access)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Authenticate(expired) error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("valid token for a deleted user", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()

		// Token is perfectly valid but the subject no longer resolves.
		access, _ := tokens.IssueAccessToken("ghost")
		_, err := svc.Authenticate(context.Background(), access)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Authenticate(deleted user) error = %v, want ErrUnauthorized", err)
		}
	})
}

func mustRegister(t *testing.T, svc *AuthService, username, email, password string) *AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return resp
}
