package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/router"
	"github.com/anonto42/playshelf/backend/pkg/config"
	"github.com/anonto42/playshelf/backend/pkg/firebase"
	"github.com/anonto42/playshelf/backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, dotenv := config.Load()

	zl := logger.New(cfg.Env)
	defer func() {
		_ = zl.Sync()
	}()
	if !dotenv {
		zl.Debug("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, zl)
	if err != nil {
		return errors.Wrap(err, "failed to initialize databases")
	}
	defer db.CloseDB()

	deps := router.Deps{
		Postgres:    db.Postgres,
		JWTSecret:   cfg.JWTSecret,
		AdminEmails: cfg.AdminEmails,
		Logger:      zl,
	}
	if db.Mongo != nil {
		deps.Mongo = db.Mongo.Database(cfg.MongoDatabase)
	}

	// Firebase login is enabled only when credentials are configured
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return errors.Wrap(err, "failed to initialize Firebase")
		}
		deps.Firebase = app.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	router.SetupMiddleware(e, zl)
	if err := router.SetupRoutes(ctx, e, deps); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("HTTP server started", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		zl.Warn("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	zl.Warn("server is shut down")
	return nil
}
