package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

type guard struct {
	allowed   []model.UserRole
	selfParam string
}

// GuardOption tweaks a role guard.
type GuardOption func(*guard)

// WithSelfMatch admits a principal whose id equals the route's owner
// identifier (path or query parameter), even when their role is
// outside the allow-list. Used for self-service routes such as a user
// editing their own record.
func WithSelfMatch(param string) GuardOption {
	return func(g *guard) {
		g.selfParam = param
	}
}

// RequireRoles produces a per-route authorization check. It must run
// after the Gateway: a request without an admitted principal fails
// with ErrNotAuthenticated, a principal outside the allow-list (and
// not matched by the self exception) fails with PermissionDenied.
// The decision is pure: no side effects, deterministic given the
// principal and the resource owner id.
func RequireRoles(allowed []model.UserRole, opts ...GuardOption) fiber.Handler {
	g := &guard{allowed: allowed}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return func(c *fiber.Ctx) error {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}

		if principal.Is(g.allowed...) {
			return c.Next()
		}

		if g.selfParam != "" {
			if owner, ok := g.ownerID(c); ok && owner == principal.ID {
				return c.Next()
			}
		}

		return PermissionDenied(g.allowed)
	}
}

func (g *guard) ownerID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw := c.Params(g.selfParam)
	if raw == "" {
		raw = c.Query(g.selfParam)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
