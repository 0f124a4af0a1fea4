package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/backend"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/config"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/events"
	applog "github.com/bhakti259/expense-tracker-remote-mcp-server/internal/log"
	appmcp "github.com/bhakti259/expense-tracker-remote-mcp-server/internal/mcp"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/services"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, backend.Config{
		Type:         backend.Type(cfg.StoreBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresURL:  cfg.PostgresURL,
	}, logger.WithComponent(applog.ComponentStorage).Logger)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer store.Close()

	// Change-event publishing is optional; the server runs without a broker.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Initialized AMQP event publisher", "exchange", cfg.AMQPExchange)
		}
	}

	svc := services.NewExpenseService(store, publisher, cfg.DefaultListLimit)
	mcpServer := appmcp.NewServer(svc, logger.WithComponent(applog.ComponentMCP))

	if cfg.Transport == config.TransportStdio {
		logger.Info("Starting expense MCP server on stdio", "backend", cfg.StoreBackend)
		if err := server.ServeStdio(mcpServer); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
		return
	}

	sse := server.NewSSEServer(mcpServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense MCP server",
			"addr", cfg.Addr(),
			"transport", cfg.Transport,
			"backend", cfg.StoreBackend)
		if err := sse.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return sse.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
