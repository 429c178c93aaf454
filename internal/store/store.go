package store

import (
	"context"
	"time"
)

// User represents a user in the identity directory. This is the only
// persisted entity: calls, presence and signaling traffic live in
// memory and are never written to disk.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsGuest      bool
	SessionID    string // For guest user session tracking
	CreatedAt    time.Time
}

// UserStore is the external identity directory consulted by the auth
// collaborator.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	CreateGuestUser(ctx context.Context, sessionID string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// Store is the full persistence interface.
type Store interface {
	UserStore
	Close() error
}
