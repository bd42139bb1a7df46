// ABOUTME: Store interface and data types for atelier persistence
// ABOUTME: Defines the Account struct and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateAccount is returned when trying to create an account whose
// user ID is already taken. A concurrent insert losing the race surfaces
// the same error; callers treat it as "already registered".
var ErrDuplicateAccount = errors.New("account already exists")

// Default values applied to newly provisioned accounts
const (
	DefaultCredits = 100.0
	DefaultRole    = "member"
)

// Account binds a unique user identity (the email address) to a credit
// balance and role. The identity is immutable after creation.
type Account struct {
	ID        string
	UserID    string
	Credits   float64
	Role      string
	CreatedAt time.Time
}

// Store defines the interface for account persistence.
// Account lookup by absent user ID is a valid outcome (ErrNotFound), not
// a failure; creation relies on the database uniqueness constraint rather
// than application-level locking.
type Store interface {
	// GetAccount retrieves an account by user ID.
	// Returns ErrNotFound if no account exists for that identity.
	GetAccount(ctx context.Context, userID string) (*Account, error)

	// CreateAccount inserts a new account. Returns ErrDuplicateAccount if
	// the user ID is already taken, including when a concurrent insert won.
	CreateAccount(ctx context.Context, account *Account) error

	// AddCredits adjusts an account's credit balance by delta (negative to
	// deduct). Returns ErrNotFound if no account exists for that identity.
	AddCredits(ctx context.Context, userID string, delta float64) error

	Close() error
}
