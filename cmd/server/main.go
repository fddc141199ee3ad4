package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"favorites-server/internal/favorite"
	"favorites-server/internal/middleware"
	"favorites-server/internal/people"
	"favorites-server/internal/planet"
	"favorites-server/internal/server"
	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/logger"
	"favorites-server/internal/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Init(cfg)
	appLogger.Info("Starting favorites server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"dialect", cfg.Database.Dialect,
		"delete_policy", cfg.Catalog.DeletePolicy,
	)

	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(cfg.Database); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
	}()

	userService := user.NewService(user.NewRepository(db, appLogger), appLogger)
	favoriteService := favorite.NewService(favorite.NewRepository(db, appLogger), db, cfg.Catalog.DeletePolicy, appLogger)
	peopleService := people.NewService(people.NewRepository(db, appLogger), favoriteService, appLogger)
	planetService := planet.NewService(planet.NewRepository(db, appLogger), favoriteService, appLogger)
	appLogger.Debug("Services initialized")

	routes := server.NewRoutes(db, userService, peopleService, planetService, favoriteService, appLogger)
	handler := routes.Handler(middleware.NewCORS(cfg.CORS))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(appLogger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received", "timeout", cfg.Server.ShutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("Server stopped")
	return nil
}
