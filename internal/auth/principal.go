package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// localsPrincipalKey is where the gateway stores the principal in the
// fiber request scope.
const localsPrincipalKey = "principal"

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// Principal is the authenticated actor for the lifetime of one
// request. It is created by the gateway after verification and is
// read-only downstream; it is never persisted.
type Principal struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Role     model.UserRole
}

// Is reports whether the principal's role is in the given set.
func (p *Principal) Is(roles ...model.UserRole) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// PrincipalFromUser builds the request principal from a resolved
// account record.
func PrincipalFromUser(user *model.User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// WithPrincipal sets the principal in the given context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromContext finds the principal in the context.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	return p, ok && p != nil
}

// CurrentPrincipal returns the principal the gateway admitted for
// this request, or ErrNotAuthenticated when the request was never
// admitted.
func CurrentPrincipal(c *fiber.Ctx) (*Principal, error) {
	p, ok := c.Locals(localsPrincipalKey).(*Principal)
	if !ok || p == nil {
		return nil, ErrNotAuthenticated
	}
	return p, nil
}
