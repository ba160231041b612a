package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/jobs"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/queue"
	"github.com/soltixdb/hotsax/internal/router"
	"github.com/soltixdb/hotsax/internal/services"
	"github.com/soltixdb/hotsax/internal/worker"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

const jobEvictionInterval = time.Minute

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("API service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	queueClient, err := queue.NewQueue(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "error", err)
	}
	defer func() { _ = queueClient.Close() }()

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := services.NewDiscordService(logger, cfg.Discord)

	store := jobs.NewStore(cfg.Worker.JobTTL)
	go store.Run(ctx, jobEvictionInterval)

	dispatcher, err := worker.NewDispatcher(queueClient, store, cfg.Worker, logger)
	if err != nil {
		logger.Fatal("Failed to create dispatcher", "error", err)
	}
	if err := dispatcher.Start(); err != nil {
		logger.Fatal("Failed to start dispatcher", "error", err)
	}

	// The memory queue only reaches workers in this process
	var inProcess *worker.Worker
	if cfg.Worker.Enabled || queueClient.Type() == "memory" {
		inProcess, err = worker.New(queueClient, service, cfg.Worker, logger)
		if err != nil {
			logger.Fatal("Failed to create worker", "error", err)
		}
		if err := inProcess.Start(); err != nil {
			logger.Fatal("Failed to start worker", "error", err)
		}
	}

	app := router.New(logger, service, dispatcher, queueClient, *cfg)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if inProcess != nil {
		if err := inProcess.Stop(); err != nil {
			logger.Warn("Failed to stop worker", "error", err)
		}
	}
	if err := dispatcher.Stop(); err != nil {
		logger.Warn("Failed to stop dispatcher", "error", err)
	}

	logger.Info("Server exited")
}
