// Package server exposes the HTTP surface: a fiber app with the auth
// gateway mounted app-wide, per-route role guards, and the response
// envelopes the API clients expect.
package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/config"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/service"
)

// Server owns the fiber app and its wiring.
type Server struct {
	app    *fiber.App
	cfg    config.Config
	logger *slog.Logger
}

// New assembles the app: error handler, CORS, auth gateway with the
// public paths exempt, then every entity route.
func New(cfg config.Config, services *service.Services, tokens *auth.TokenService, hasher *auth.Hasher, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ProjectName,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New())

	prefix := cfg.APIPrefix
	authenticator := auth.NewAuthenticator(services.Users, hasher, tokens).
		WithLogger(logger)

	app.Use(auth.Gateway(auth.GatewayConfig{
		Tokens: tokens,
		Store:  services.Users,
		Skip:   auth.SkipPaths(prefix+"/login", prefix+"/ping"),
		Logger: logger,
	}))

	s := &Server{app: app, cfg: cfg, logger: logger}
	s.registerRoutes(app.Group(prefix), services, authenticator)
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", "address", s.cfg.Address, "prefix", s.cfg.APIPrefix)
	return s.app.Listen(s.cfg.Address)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
