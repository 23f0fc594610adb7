package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
	"green-ledger/esg-platform/esg-platform-backend/internal/catalog"
	"green-ledger/esg-platform/esg-platform-backend/internal/config"
	"green-ledger/esg-platform/esg-platform-backend/internal/reports/export"
)

func main() {
	// .env is optional; real deployments configure via environment.
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
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to access database pool", zap.Error(err))
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	}

	if err := db.AutoMigrate(
		&catalog.Product{},
		&catalog.MaterialRecord{},
		&catalog.FacilityAllocationRecord{},
		&assessment.AssessmentRun{},
	); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	catalogRepo := catalog.NewRepository(db)
	assessmentRepo := assessment.NewRepository(db)

	inputSource := catalog.NewInputSource(catalogRepo)
	assessmentService := assessment.NewService(inputSource, assessmentRepo, logger)
	catalogService := catalog.NewService(catalogRepo, assessmentRepo, logger)
	exportService := export.NewService()

	catalogHandler := catalog.NewHandler(catalogService, catalogRepo, logger)
	assessmentHandler := assessment.NewHandler(assessmentService, exportService, logger)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	v1 := router.Group("/api/v1")
	catalogHandler.RegisterRoutes(v1)
	assessmentHandler.RegisterRoutes(v1)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	if server.ReadTimeout == 0 {
		server.ReadTimeout = 15 * time.Second
	}
	if server.WriteTimeout == 0 {
		server.WriteTimeout = 30 * time.Second
	}

	logger.Info("Server starting", zap.String("addr", cfg.Server.Addr()))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
}
