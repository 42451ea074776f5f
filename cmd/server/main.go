package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rampsync.backend/internal/config"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/infrastructure/jobs"
	"rampsync.backend/internal/infrastructure/models"
	"rampsync.backend/internal/infrastructure/provider"
	"rampsync.backend/internal/infrastructure/repositories"
	"rampsync.backend/internal/interfaces/http/handlers"
	"rampsync.backend/internal/interfaces/http/middleware"
	"rampsync.backend/internal/usecases"
	"rampsync.backend/pkg/crypto"
	"rampsync.backend/pkg/jwt"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
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

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs dashboard idempotency
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL via GORM")
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(context.Background(), "Database schema migrated")
	}

	verifier, err := crypto.NewWebhookVerifier(cfg.Provider.WebhookPublicKey, cfg.Provider.WebhookTolerance)
	if err != nil {
		return fmt.Errorf("failed to parse webhook public key: %w", err)
	}
	if !verifier.Enabled() {
		logger.Warn(context.Background(), "Webhook signature verification disabled: no public key configured")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
	providerClient := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	kycLinkRepo := repositories.NewKYCLinkRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	virtualAccRepo := repositories.NewVirtualAccountRepository(db)
	virtualAccEventRepo := repositories.NewVirtualAccountEventRepository(db)
	externalAccountRepo := repositories.NewExternalAccountRepository(db)
	liquidationRepo := repositories.NewLiquidationAddressRepository(db)
	drainRepo := repositories.NewDrainRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	webhookEventRepo := repositories.NewWebhookEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	provisioner := usecases.NewOnboardingProvisioner(providerClient, walletRepo, virtualAccRepo, userRepo, cfg.Onboarding)
	reconciler := usecases.NewKYCReconciler(kycLinkRepo, customerRepo, userRepo, uow, provisioner)
	router := usecases.NewEventRouter(map[entities.EventCategory]usecases.CategoryHandler{
		entities.EventCategoryCustomer:               usecases.NewCustomerHandler(customerRepo, userRepo),
		entities.EventCategoryKYCLink:                usecases.NewKYCLinkHandler(reconciler),
		entities.EventCategoryTransfer:               usecases.NewTransferHandler(transferRepo, userRepo),
		entities.EventCategoryLiquidationDrain:       usecases.NewDrainHandler(drainRepo, liquidationRepo, userRepo),
		entities.EventCategoryVirtualAccountActivity: usecases.NewVirtualAccountActivityHandler(virtualAccEventRepo, virtualAccRepo, userRepo),
	})
	webhookUsecase := usecases.NewWebhookUsecase(webhookEventRepo, router)
	kycUsecase := usecases.NewKYCUsecase(providerClient, kycLinkRepo, userRepo, reconciler)
	syncUsecase := usecases.NewSyncUsecase(providerClient, userRepo, customerRepo, walletRepo, virtualAccRepo, externalAccountRepo, liquidationRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, provisioner)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backlogJob := jobs.NewWebhookBacklogJob(webhookEventRepo, cfg.Jobs.BacklogInterval, cfg.Jobs.BacklogGrace)
	go backlogJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		webhookHandler:   handlers.NewWebhookHandler(webhookUsecase, verifier),
		kycHandler:       handlers.NewKYCHandler(kycUsecase),
		syncHandler:      handlers.NewSyncHandler(syncUsecase),
		adminHandler:     handlers.NewAdminHandler(webhookUsecase, adminUsecase),
		authMiddleware:   middleware.AuthMiddleware(jwtService),
		operatorAuth:     middleware.OperatorAuthMiddleware(jwtService, cfg.Security.OperatorKeyHash),
		idempotencyGuard: middleware.IdempotencyMiddleware(),
	})

	for _, route := range r.Routes() {
		logger.Debug(context.Background(), "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-ctx.Done():
			return
		}
		logger.Info(context.Background(), "Shutting down server")
		backlogJob.Stop()
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(context.Background(), "RampSync backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Bool("webhook_verification", verifier.Enabled()),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
