// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the EduConsole server. It loads
// configuration, opens the session store, wires the platform API client,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"educonsole/internal/api"
	"educonsole/internal/config"
	"educonsole/internal/handlers"
	"educonsole/internal/render"
	"educonsole/internal/router"
	"educonsole/internal/session"
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
		"api", cfg.APIBaseURL,
		"session_backend", cfg.SessionBackend,
	)

	// Pick the session storage backend. File is the workstation default;
	// Valkey serves hosted deployments where restarts or replicas must see
	// the same session.
	var storage session.Storage
	switch cfg.SessionBackend {
	case config.SessionBackendValkey:
		client, err := session.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		storage = session.NewValkeyStorage(client)
	default:
		storage = session.NewFileStorage(cfg.SessionFile, cfg.SessionKey)
	}

	sessionStore, err := session.NewStore(storage)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, cfg.APITimeout, sessionStore)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	console := handlers.New(renderer, sessionStore, client)
	defer console.Close()
	client.OnAuthFailure(console.SessionExpired)

	secureCookies := !cfg.IsDev()
	r, stopLimiter := router.New(sessionStore, console, router.Options{SecureCookies: secureCookies})
	defer stopLimiter()

	// WriteTimeout accommodates video uploads proxied through to the
	// platform's media endpoint.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

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

	slog.Info("server stopped gracefully")
}
