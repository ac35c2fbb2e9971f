package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/config"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/database"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/server"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
		return err
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	hasher := auth.NewHasher()
	tokens, err := auth.NewTokenService(cfg.Auth, cfg.ProjectName)
	if err != nil {
		return err
	}

	services := service.New(db, hasher)
	if err := seedAdmin(ctx, cfg.Bootstrap, services, logger); err != nil {
		return err
	}

	srv := server.New(*cfg, services, tokens, hasher, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedAdmin registers the bootstrap admin account when one is
// configured and not present yet. Every other account is created by
// an admin through the API.
func seedAdmin(ctx context.Context, boot config.Bootstrap, services *service.Services, logger *slog.Logger) error {
	if boot.AdminEmail == "" || boot.AdminPassword == "" {
		return nil
	}

	_, err := services.Users.FindActiveByEmail(ctx, boot.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.IsNotFound(err) {
		return err
	}

	admin, err := services.Users.Create(ctx, service.CreateUserPayload{
		FullName:           "Administrator",
		Email:              boot.AdminEmail,
		Password:           boot.AdminPassword,
		RegistrationNumber: "ADMIN-0001",
		Role:               "Admin",
	})
	if err != nil {
		return err
	}

	logger.Info("bootstrap admin created", "email", admin.Email)
	return nil
}
