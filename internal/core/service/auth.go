package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// UserRepository defines the storage interface for user credentials.
type UserRepository interface {
	// Get retrieves a user by username.
	// Returns domain.ErrUserNotFound if no user matches.
	Get(ctx context.Context, username string) (*domain.User, error)

	// Exists reports whether any user matches the username OR the email.
	Exists(ctx context.Context, username, email string) (bool, error)

	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the registration, login and refresh protocols
// on top of the credential store and the token service.
type AuthService struct {
	users  UserRepository
	tokens *TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserRepository, tokens *TokenService, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterRequest contains parameters for user registration.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// AuthResponse contains the outcome of a successful register or login.
type AuthResponse struct {
	User   *domain.User
	Tokens *TokenPair
}

// Register creates a new user and issues a token pair so registration
// doubles as a login. The password is hashed with bcrypt before it is
// persisted; the plaintext is never stored or logged.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	exists, err := s.users.Exists(ctx, username, email)
	if err != nil {
		s.logger.Error("user existence check failed", "error", err)
		return nil, domain.ErrInternal.WithCause(err)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, domain.ErrInternal.WithCause(err)
	}

	user := domain.NewUser(username, email, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("user creation failed", "error", err)
		return nil, domain.ErrInternal.WithCause(err)
	}

	tokens, err := s.tokens.IssuePair(user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username)
	return &AuthResponse{User: user, Tokens: tokens}, nil
}

// LoginRequest contains parameters for a login attempt.
type LoginRequest struct {
	Username string
	Password string
}

// Login verifies credentials and issues a token pair. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.Get(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.Error("user lookup failed", "error", err)
		return nil, domain.ErrInternal.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	tokens, err := s.tokens.IssuePair(user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token into a new token pair. Expiry is
// reported as domain.ErrTokenExpired so clients know to re-login
// instead of retrying.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingCredentials
	}
	return s.tokens.Refresh(refreshToken)
}

// Authenticate turns a bearer token into a resolved user. This is the
// single trust boundary: every failure mode collapses into
// domain.ErrUnauthorized so the generic path leaks nothing about why
// the token was rejected. A valid token for a deleted user is not a
// valid session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized.WithCause(err)
	}

	user, err := s.users.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.Error("user lookup failed", "error", err)
		return nil, domain.ErrInternal.WithCause(err)
	}

	return user, nil
}
