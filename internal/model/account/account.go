package account

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrBadCredentials = errors.New("invalid credentials")
)

// Account is one credential row in the users sheet. The user ID doubles as
// the name of the user's diary record collection and never changes after
// registration.
type Account struct {
	Email        string
	PasswordHash string
	UserID       string
}

// Store exposes account lookup and provisioning for HTTP handlers.
type Store interface {
	// FindUserID resolves an email to its user ID, or ErrNotFound.
	FindUserID(ctx context.Context, email string) (string, error)
	// CreateUser generates a fresh user ID, appends a credential row and
	// provisions the user's record collection.
	CreateUser(ctx context.Context, email, password string) (string, error)
	// VerifyCredentials scans credential rows in order; the first row whose
	// email matches decides accept or reject, even if a later row also
	// matches. Returns the user ID on success, ErrBadCredentials on a
	// password mismatch and ErrNotFound when the email never appears.
	VerifyCredentials(ctx context.Context, email, password string) (string, error)
}
