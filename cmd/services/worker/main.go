package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/queue"
	"github.com/soltixdb/hotsax/internal/services"
	"github.com/soltixdb/hotsax/internal/utils"
	"github.com/soltixdb/hotsax/internal/worker"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

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
	logger.Info("Worker service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	if qt := utils.QueueType(strings.ToLower(cfg.Queue.Type)); qt == "" || qt == utils.QueueTypeMemory {
		logger.Fatal("A standalone worker needs a shared queue; memory queue selected",
			"hint", "set queue.type to nats, redis or kafka")
	}

	logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	queueClient, err := queue.NewQueue(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "error", err)
	}
	defer func() { _ = queueClient.Close() }()

	service := services.NewDiscordService(logger, cfg.Discord)
	w, err := worker.New(queueClient, service, cfg.Worker, logger)
	if err != nil {
		logger.Fatal("Failed to create worker", "error", err)
	}
	if err := w.Start(); err != nil {
		logger.Fatal("Failed to start worker", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	if err := w.Stop(); err != nil {
		logger.Error("Failed to stop worker", "error", err)
	}
	logger.Info("Worker exited")
}
