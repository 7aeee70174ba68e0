package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a treasurer account on the HTTP surface. Treasurers create
// clubs and receive the club's capability credential. The accounting core
// never sees this type.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// DisplayName is the user's display name.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the unix millisecond timestamp the account was created.
	CreatedAt int64

	// UpdatedAt is the unix millisecond timestamp of the last change.
	UpdatedAt int64
}

// NewUser creates a User with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UnixMilli()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
