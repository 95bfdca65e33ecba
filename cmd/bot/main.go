// profilebot - Telegram bot collecting name, age, and address.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelin/profilebot/internal/config"
	"github.com/avelin/profilebot/internal/devchat"
	"github.com/avelin/profilebot/internal/dialog"
	"github.com/avelin/profilebot/internal/store"
	"github.com/avelin/profilebot/internal/telegram"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting profilebot", "env", cfg.Env, "port", cfg.Port, "session_timeout", cfg.SessionTimeout)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Dialogue engine and transports.
	sessions := dialog.NewRegistry(cfg.SessionTimeout)
	engine := dialog.NewEngine(repo, sessions)

	client := telegram.NewClient(cfg.BotToken)
	dispatcher := telegram.NewDispatcher(client, engine.HandleMessage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions.StartSweeper(ctx)

	// Setup router.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	if cfg.IsProduction() {
		slog.Info("Running in WEBHOOK mode", "url", cfg.WebhookURL())

		if err := client.SetWebhook(ctx, cfg.WebhookURL(), cfg.WebhookSecret); err != nil {
			slog.Error("Failed to register webhook", "error", err)
			os.Exit(1)
		}
		r.Method(http.MethodPost, cfg.WebhookPath, telegram.NewWebhookHandler(dispatcher, cfg.WebhookSecret))
	} else {
		slog.Info("Running in POLLING mode")

		// A stale webhook registration blocks getUpdates.
		if err := client.DeleteWebhook(ctx); err != nil {
			slog.Warn("Failed to remove existing webhook", "error", err)
		}
		go telegram.NewPoller(client, dispatcher).Run(ctx)

		// Local chat surface for exercising the dialogue without Telegram.
		r.Get("/ws/chat", devchat.NewHandler(engine.HandleMessage).ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
