package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/config"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// stubIdentityStore serves accounts from a map and counts lookups.
type stubIdentityStore struct {
	users   map[uuid.UUID]*model.User
	lookups int
}

func (s *stubIdentityStore) FindActive(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.lookups++
	user, ok := s.users[id]
	if !ok || !user.IsActive {
		return nil, errors.New("record not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return user, nil
}

func newGatewayFixture(t *testing.T) (*fiber.App, *TokenService, *stubIdentityStore, *model.User) {
	t.Helper()

	tokens, err := NewTokenService(config.Auth{
		SigningKey:    "gateway-test-key",
		SigningMethod: "HS256",
		TokenTTL:      30,
	}, "ja5p-test")
	require.NoError(t, err)

	user := &model.User{
		ID:       uuid.New(),
		FullName: "Test Operator",
		Email:    "operator@example.com",
		Role:     model.RoleEditor,
	}
	user.Restore()
	store := &stubIdentityStore{users: map[uuid.UUID]*model.User{user.ID: user}}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var rich *errors.Error
			if errors.As(err, &rich) {
				return c.Status(rich.Code).SendString(rich.TextCode)
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Use(Gateway(GatewayConfig{
		Tokens: tokens,
		Store:  store,
		Skip:   SkipPaths("/ping"),
	}))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		return c.SendString(principal.Email)
	})

	return app, tokens, store, user
}

func TestGatewayAdmitsValidToken(t *testing.T) {
	app, tokens, store, user := newGatewayFixture(t)

	token, err := tokens.Issue(user.ID.String(), user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.lookups, "one identity read per request")
}

func TestGatewayMissingCredential(t *testing.T) {
	app, _, _, _ := newGatewayFixture(t)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare bearer", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGatewayRequiresSchemeSeparator(t *testing.T) {
	app, tokens, store, user := newGatewayFixture(t)

	token, err := tokens.Issue(user.ID.String(), user.Role)
	require.NoError(t, err)

	// A valid token glued to the scheme is not a bearer credential.
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer"+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, store.lookups)
}

func TestGatewayRejectsDeactivatedAccount(t *testing.T) {
	app, tokens, _, user := newGatewayFixture(t)

	token, err := tokens.Issue(user.ID.String(), user.Role)
	require.NoError(t, err)

	// Account gets disabled after the token was issued; the token is
	// still well within its lifetime.
	user.Disable(time.Now())

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGatewayRejectsExpiredToken(t *testing.T) {
	app, tokens, store, user := newGatewayFixture(t)

	token, err := tokens.IssueWithTTL(user.ID.String(), user.Role, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, store.lookups, "expired tokens never reach storage")
}

func TestGatewayRejectsNonUUIDSubject(t *testing.T) {
	app, tokens, _, _ := newGatewayFixture(t)

	token, err := tokens.Issue("not-a-uuid", model.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGatewaySkipsPublicPaths(t *testing.T) {
	app, _, _, _ := newGatewayFixture(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
