package user

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by Register when the email is in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Authenticate on a bad
	// email/password pair. Unknown email and wrong password are not
	// distinguishable from the outside.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a librarian account. Only authenticated librarians may mutate
// books and loans when auth is enabled.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
