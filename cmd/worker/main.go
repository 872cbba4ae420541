package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/config"
	"github.com/sohailkhan2596/saas-analytics-service/internal/engine"
	"github.com/sohailkhan2596/saas-analytics-service/internal/logger"
	"github.com/sohailkhan2596/saas-analytics-service/internal/queue/sqs"
	"github.com/sohailkhan2596/saas-analytics-service/internal/repository/clickhouse"
	"github.com/sohailkhan2596/saas-analytics-service/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting recompute worker",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Initialize ClickHouse client
	chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	defer func() {
		if err := chClient.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}()

	// Initialize repository
	repo := clickhouse.NewRepository(chClient, log)

	// Initialize schema (create tables if not exist)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize schema", zap.Error(err))
	}
	log.Info("Database schema initialized")

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize recompute pipeline and worker
	pipeline := worker.NewPipeline(repo, engine.New(log), log)
	w := worker.NewWorker(cfg, sqsClient, pipeline, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Worker.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start worker
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Worker starting")

	go func() {
		if err := w.Start(workerCtx); err != nil {
			log.Fatal("Worker error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker gracefully")
	cancel()
}
