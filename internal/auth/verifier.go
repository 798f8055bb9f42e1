package auth

import (
	"context"
	"errors"

	"github.com/copperkettle/coffeehouse/internal/database"
)

var (
	// ErrUnknownUser indicates that no account exists for the username.
	ErrUnknownUser = errors.New("unknown user")
	// ErrBadCredentials indicates that the password did not match.
	ErrBadCredentials = errors.New("bad credentials")
)

// UserSource is the slice of the user store the auth package reads from.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*database.User, error)
	FindByID(ctx context.Context, id string) (*database.User, error)
}

// Verifier checks submitted credentials against stored accounts.
type Verifier struct {
	users UserSource
}

func NewVerifier(users UserSource) *Verifier {
	return &Verifier{users: users}
}

// Verify looks up the account and compares the submitted password to the
// stored one. Passwords are kept verbatim, so the comparison is direct
// string equality.
func (v *Verifier) Verify(ctx context.Context, username, password string) (*database.User, error) {
	user, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	if user.Password != password {
		return nil, ErrBadCredentials
	}

	return user, nil
}
