// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the bibtree server.
// It loads configuration, connects to the document store, restores the
// category tree, sets up routing, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"bibtree/internal/cache"
	"bibtree/internal/config"
	"bibtree/internal/database"
	"bibtree/internal/docstore"
	"bibtree/internal/handlers"
	"bibtree/internal/registry"
	"bibtree/internal/router"
	"bibtree/internal/session"
	"bibtree/internal/treesync"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"docstore", cfg.DocstoreDriver,
	)

	// Valkey backs sessions when auth is enabled and can also be the
	// document store itself. Connect once if either needs it.
	var valkeyClient *redis.Client
	if cfg.DocstoreDriver == "valkey" || cfg.AuthEnabled() {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	}

	// Select the document store driver.
	var store docstore.Store
	switch cfg.DocstoreDriver {
	case "valkey":
		store = docstore.NewValkey(valkeyClient)
	default:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}

		store = docstore.NewPostgres(db)
	}

	reg := registry.New(store)

	// Restore the tree snapshot; mutations are persisted with a debounced
	// whole-tree write.
	sync := treesync.New(store, reg, cfg.SaveQuietPeriod)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sync.LoadAll(loadCtx); err != nil {
		cancelLoad()
		slog.Error("failed to load category tree", "error", err)
		os.Exit(1)
	}
	cancelLoad()

	// Optional single-curator authentication.
	var sessionStore *session.Store
	var adminHash []byte
	if cfg.AuthEnabled() {
		adminHash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash admin password", "error", err)
			os.Exit(1)
		}
		sessionStore = session.NewStore(valkeyClient, !cfg.IsDev())
		slog.Info("authentication enabled")
	} else {
		slog.Warn("ADMIN_PASSWORD not set — API is open")
	}

	api := handlers.NewAPI(sync, reg, sessionStore, adminHash)
	r := router.New(api, sessionStore)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Flush any pending debounced tree save before exiting.
	sync.Close()

	slog.Info("server stopped gracefully")
}
