package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// Logger is the minimal structured logging surface auth components
// need. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// IdentityStore resolves a subject identifier to a live account.
// Lookups are restricted to currently-active accounts; a deactivated
// account is indistinguishable from a missing one.
type IdentityStore interface {
	FindActive(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// GatewayConfig configures the authentication gateway middleware.
type GatewayConfig struct {
	Tokens *TokenService
	Store  IdentityStore
	// Skip exempts public routes (login, health) from authentication.
	Skip   func(c *fiber.Ctx) bool
	Logger Logger
}

// Gateway is the per-request authentication middleware. It extracts
// the bearer credential, verifies it, resolves the subject against
// active accounts and attaches the principal to the request. The
// lookup runs on every request, never cached: an account deactivated
// after token issuance must be rejected before the token expires.
func Gateway(cfg GatewayConfig) fiber.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := cfg.Tokens.Verify(raw)
		if err != nil {
			return err
		}

		subject, err := uuid.Parse(claims.UserID())
		if err != nil {
			logger.Debug("gateway: token subject is not a valid id", "error", err)
			return ErrTokenMalformed
		}

		user, err := cfg.Store.FindActive(c.UserContext(), subject)
		if err != nil {
			if errors.IsNotFound(err) {
				// Token references a deleted, deactivated or unknown account.
				return ErrNotAuthenticated
			}
			return errors.Wrap(err, errors.CategoryInternal, "failed to resolve identity")
		}

		principal := PrincipalFromUser(user)
		c.Locals(localsPrincipalKey, principal)
		c.SetUserContext(WithPrincipal(c.UserContext(), principal))

		return c.Next()
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	const scheme = "Bearer"

	if len(header) <= len(scheme)+1 ||
		!strings.EqualFold(header[:len(scheme)], scheme) ||
		header[len(scheme)] != ' ' {
		return "", ErrMissingCredential
	}

	token := strings.TrimSpace(header[len(scheme)+1:])
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}

// SkipPaths exempts exact paths from the gateway.
func SkipPaths(paths ...string) func(c *fiber.Ctx) bool {
	return func(c *fiber.Ctx) bool {
		for _, path := range paths {
			if c.Path() == path {
				return true
			}
		}
		return false
	}
}
