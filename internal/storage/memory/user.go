package memory

import (
	"context"
	"sync"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/pkg/cmap"
)

// UserStore provides in-memory user storage with username and email
// indexes. A plain mutex guards creates so the document and both
// indexes stay consistent.
type UserStore struct {
	users  *cmap.Map[string, *domain.User] // userID -> user
	names  *cmap.Map[string, string]       // username -> userID
	emails *cmap.Map[string, string]       // email -> userID

	mu sync.Mutex
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  cmap.New[string, *domain.User](),
		names:  cmap.New[string, string](),
		emails: cmap.New[string, string](),
	}
}

// Get retrieves a user by username.
func (s *UserStore) Get(_ context.Context, username string) (*domain.User, error) {
	userID, ok := s.names.Get(username)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user, ok := s.users.Get(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

// Exists reports whether the username or the email is already taken.
func (s *UserStore) Exists(_ context.Context, username, email string) (bool, error) {
	return s.names.Has(username) || s.emails.Has(email), nil
}

// Create persists a user and its index entries atomically.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.names.Has(user.Username) || s.emails.Has(user.Email) {
		return domain.ErrUserExists
	}
	s.users.Set(user.ID, user.Clone())
	s.names.Set(user.Username, user.ID)
	s.emails.Set(user.Email, user.ID)
	return nil
}
