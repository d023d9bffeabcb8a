package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/siteflow/orderbot"
	"github.com/siteflow/orderbot/internal/agent"
	"github.com/siteflow/orderbot/internal/config"
	"github.com/siteflow/orderbot/internal/handler"
	"github.com/siteflow/orderbot/internal/middleware"
	"github.com/siteflow/orderbot/internal/repository"
	"github.com/siteflow/orderbot/internal/service"
	"github.com/siteflow/orderbot/internal/session"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(orderbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize agents
	client := agent.NewClient(cfg.OpenAIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel)
	slog.Info("agents initialized", "model", cfg.OpenAIModel)

	// Initialize core services
	orderRepo := repository.NewOrderRepository(pool)
	orchestrator := service.NewOrchestrator(service.Deps{
		Sessions:  session.NewStore(),
		Responder: agent.NewConversationalAgent(client),
		Extractor: agent.NewExtractionAgent(client),
		Legacy:    agent.NewLegacyAgent(client),
		Orders:    orderRepo,
	})

	// Register routes
	mux := http.NewServeMux()
	h := handler.New(handler.Deps{
		Orchestrator: orchestrator,
		Orders:       orderRepo,
		DB:           pool,
	})
	h.Register(mux)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      middleware.Recover(middleware.Logging(mux)),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}
