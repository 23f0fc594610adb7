package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
	"green-ledger/esg-platform/esg-platform-backend/internal/catalog"
	"green-ledger/esg-platform/esg-platform-backend/internal/config"
)

// Catalog writes only mark stored runs stale; this worker recomputes them on
// a schedule so read endpoints keep serving fresh results without blocking
// writes.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	catalogRepo := catalog.NewRepository(db)
	assessmentRepo := assessment.NewRepository(db)
	service := assessment.NewService(catalog.NewInputSource(catalogRepo), assessmentRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Assessment.RefreshSchedule, func() {
		refreshed, err := service.RefreshStale(ctx, cfg.Assessment.RefreshBatchSize)
		if err != nil {
			logger.Error("Failed to refresh stale assessments", zap.Error(err))
			return
		}
		if refreshed > 0 {
			logger.Info("Refreshed stale assessments", zap.Int("count", refreshed))
		}
	})
	if err != nil {
		logger.Fatal("Failed to schedule refresh job", zap.Error(err))
	}

	logger.Info("Assessment worker starting",
		zap.String("schedule", cfg.Assessment.RefreshSchedule),
		zap.Int("batch_size", cfg.Assessment.RefreshBatchSize))
	scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received")
	cancel()
	<-scheduler.Stop().Done()
	logger.Info("Assessment worker stopped")
}
