package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flexnotes/flexnotes-go/internal/core/domain"
	"github.com/flexnotes/flexnotes-go/internal/storage"
)

// UserStore persists users with secondary indexes on username and
// email. The document and both index entries are written in one
// transaction.
type UserStore struct {
	engine storage.KVEngine
}

// NewUserStore creates a UserStore.
func NewUserStore(engine storage.KVEngine) *UserStore {
	return &UserStore{engine: engine}
}

// Get retrieves a user by username.
func (s *UserStore) Get(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		userID, err := tx.Get(userNameKey(username))
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		raw, err := tx.Get(userIDKey(string(userID)))
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				// Index entry without a document; treat as absent.
				return domain.ErrUserNotFound
			}
			return err
		}
		return json.Unmarshal(raw, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether the username or the email is already taken.
func (s *UserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	var exists bool

	err := s.engine.View(ctx, func(tx storage.Tx) error {
		if _, err := tx.Get(userNameKey(username)); err == nil {
			exists = true
			return nil
		} else if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}

		if _, err := tx.Get(userEmailKey(email)); err == nil {
			exists = true
			return nil
		} else if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	return exists, err
}

// Create persists a user together with its username and email index
// entries. A taken username or email fails the whole transaction with
// domain.ErrUserExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return s.engine.Update(ctx, func(tx storage.Tx) error {
		for _, key := range [][]byte{userNameKey(user.Username), userEmailKey(user.Email)} {
			if _, err := tx.Get(key); err == nil {
				return domain.ErrUserExists
			} else if !errors.Is(err, storage.ErrKeyNotFound) {
				return err
			}
		}

		if err := tx.Set(userIDKey(user.ID), raw); err != nil {
			return err
		}
		if err := tx.Set(userNameKey(user.Username), []byte(user.ID)); err != nil {
			return err
		}
		return tx.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}
