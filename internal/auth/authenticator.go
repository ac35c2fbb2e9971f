package auth

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-errors"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// UserStore is the lookup surface the authenticator needs at login.
type UserStore interface {
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator verifies credentials and issues access tokens.
type Authenticator struct {
	store  UserStore
	hasher *Hasher
	tokens *TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(store UserStore, hasher *Hasher, tokens *TokenService) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: slog.Default(),
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login verifies the email/password pair against active accounts and
// returns a signed token plus the account. Unknown email and wrong
// password are externally indistinguishable.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := a.store.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			a.logger.Info("login rejected", "reason", "unknown email")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during login")
	}

	if err := a.hasher.Verify(password, user.PasswordHash); err != nil {
		a.logger.Info("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
