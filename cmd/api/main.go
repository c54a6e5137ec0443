package main

// @title Map Annotation Service API
// @version 1.0.0
// @description Сервис аннотирования карты: маркеры трёх категорий, подтверждение заголовка и описания, таблица маркеров, попап выбора и масштабирование иконок от зума.
// @description
// @description Основные возможности:
// @description - Рисование и подтверждение маркеров
// @description - Выбор маркеров на карте и в таблице (grouped / ungrouped)
// @description - Поиск и сортировка маркеров по заголовку
// @description - Стили слоёв и экспорт в GeoJSON
// @description - Координата курсора и геодезические измерения

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/map-annotation-service/docs/swagger"
	"github.com/map-annotation-service/internal/config"
	httpDelivery "github.com/map-annotation-service/internal/delivery/http"
	"github.com/map-annotation-service/internal/delivery/http/handler"
	"github.com/map-annotation-service/internal/pkg/logger"
	"github.com/map-annotation-service/internal/repository/memory"
	redisRepo "github.com/map-annotation-service/internal/repository/redis"
	"github.com/map-annotation-service/internal/usecase"
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

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Map Annotation Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("events_enabled", cfg.Events.Enabled),
	)

	// 3. Redis нужен только для стрима событий маркеров
	var (
		redisClient *redisRepo.Redis
		publisher   usecase.MarkerEventPublisher
	)
	workerManager := worker.NewWorkerManager(log)

	if cfg.Events.Enabled {
		redisClient, err = redisRepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Health(ctx); err != nil {
			cancel()
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		cancel()

		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log,
			redisRepo.WithMaxLen(cfg.Events.MaxLen),
			redisRepo.WithBlock(cfg.Worker.BlockTimeout))
		publisher = usecase.NewStreamEventPublisher(streamRepo, cfg.Events.Stream, log)

		// Журнал событий можно держать в том же процессе
		if cfg.Worker.Enabled {
			workerManager.Register(markerlog.NewMarkerLogWorker(
				streamRepo,
				cfg.Events.Stream,
				cfg.Worker.ConsumerGroup,
				cfg.Worker.BatchSize,
				cfg.Worker.PollInterval,
				log,
				markerlog.WithReadMode(markerlog.ReadMode(cfg.Worker.ReadMode)),
			))
		}
		log.Info("Marker event stream enabled", zap.String("stream", cfg.Events.Stream))
	}

	// 4. Initialize Repositories
	layerRepo := memory.NewLayerRepository()
	featureStore := memory.NewFeatureStore()

	log.Info("Repositories initialized")

	// 5. Initialize workspace
	workspace, err := usecase.NewWorkspace(cfg.Map, layerRepo, featureStore, publisher, log)
	if err != nil {
		log.Fatal("Failed to initialize workspace", zap.Error(err))
	}
	workerManager.Register(workspace)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Initialize HTTP Handlers
	drawHandler := handler.NewDrawHandler(workspace, log)
	selectionHandler := handler.NewSelectionHandler(workspace, log)
	layerHandler := handler.NewLayerHandler(workspace, log)
	iconHandler := handler.NewIconHandler(workspace, log)
	mapHandler := handler.NewMapHandler(log)

	log.Info("HTTP handlers initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		drawHandler,
		selectionHandler,
		layerHandler,
		iconHandler,
		mapHandler,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop workspace loop and workers
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
