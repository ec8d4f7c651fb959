package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sellhub.backend/internal/config"
	"sellhub.backend/internal/infrastructure/jobs"
	"sellhub.backend/internal/infrastructure/payout"
	"sellhub.backend/internal/infrastructure/repositories"
	"sellhub.backend/internal/interfaces/http/handlers"
	"sellhub.backend/internal/interfaces/http/middleware"
	"sellhub.backend/internal/usecases"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize repositories
	accountRepo := repositories.NewSellerAccountRepository(db)
	ledgerRepo := repositories.NewLedgerTransactionRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	affiliateSaleRepo := repositories.NewAffiliateSaleRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	refundRepo := repositories.NewRefundRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize payout provider client
	payoutClient := payout.NewClient(cfg.Payout.BaseURL, cfg.Payout.APIKey, cfg.Payout.Timeout)

	// Initialize usecases
	calculator := usecases.NewCommissionCalculator(cfg.Settlement)
	ledgerUsecase := usecases.NewLedgerUsecase(accountRepo, ledgerRepo, uow)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, paymentRepo, affiliateSaleRepo, calculator, ledgerUsecase, uow)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(withdrawalRepo, ledgerUsecase, payoutClient, uow, cfg.Settlement)
	affiliateUsecase := usecases.NewAffiliateUsecase(affiliateSaleRepo, orderRepo, ledgerUsecase, withdrawalUsecase, uow, cfg.Settlement)
	refundUsecase := usecases.NewRefundUsecase(refundRepo, paymentRepo, orderRepo, ledgerRepo, ledgerUsecase, affiliateUsecase, uow)
	webhookUsecase := usecases.NewWebhookUsecase(orderUsecase, affiliateUsecase, refundUsecase)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	accountHandler := handlers.NewAccountHandler(ledgerUsecase)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalUsecase)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateUsecase)
	adminHandler := handlers.NewAdminHandler(withdrawalUsecase, ledgerUsecase, refundUsecase)
	webhookHandler := handlers.NewWebhookHandler(webhookUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconcileJob := jobs.NewPayoutReconcileJob(withdrawalUsecase, cfg.Settlement.PayoutStuckThreshold)
	go reconcileJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		orderHandler:      orderHandler,
		accountHandler:    accountHandler,
		withdrawalHandler: withdrawalHandler,
		affiliateHandler:  affiliateHandler,
		adminHandler:      adminHandler,
		webhookHandler:    webhookHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reconcileJob.Stop()
		cancel()
		if err := redis.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis client: %v", err)
		}
	}()

	// Start server
	log.Printf("🚀 SellHub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
