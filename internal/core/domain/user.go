package domain

import "strings"

// User is a registered identity. Users are created at registration and
// immutable afterwards; notes and todo lists reference them by ID.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// NewUser creates a User with a fresh ID. The password hash is computed
// by the auth service; this constructor never sees a plaintext password.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Validate checks structural invariants.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrInvalidArgument.WithDetails("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrInvalidArgument.WithDetails("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrInvalidArgument.WithDetails("email is required")
	}
	if u.PasswordHash == "" {
		return ErrInvalidArgument.WithDetails("password hash is required")
	}
	return nil
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	clone := *u
	return &clone
}
