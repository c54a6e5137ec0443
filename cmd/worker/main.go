package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/map-annotation-service/internal/config"
	"github.com/map-annotation-service/internal/pkg/logger"
	redisRepo "github.com/map-annotation-service/internal/repository/redis"
	"github.com/map-annotation-service/internal/worker"
	"github.com/map-annotation-service/internal/worker/markerlog"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Marker Event Log Worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Events.Stream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize))

	// 3. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log,
		redisRepo.WithBlock(cfg.Worker.BlockTimeout))

	// 5. Initialize workers
	logWorker := markerlog.NewMarkerLogWorker(
		streamRepo,
		cfg.Events.Stream,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.PollInterval,
		log,
		markerlog.WithReadMode(markerlog.ReadMode(cfg.Worker.ReadMode)),
	)

	// 6. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(logWorker)

	// 7. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	stats := logWorker.Stats()
	log.Info("Worker shutdown complete",
		zap.Int("confirmed", stats.Confirmed),
		zap.Int("discarded", stats.Discarded),
		zap.Int("skipped", stats.Skipped))
}
