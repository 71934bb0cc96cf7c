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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trackify.backend/internal/config"
	"trackify.backend/internal/domain/entities"
	pgsource "trackify.backend/internal/infrastructure/datasources/postgres"
	"trackify.backend/internal/infrastructure/jobs"
	"trackify.backend/internal/infrastructure/notification"
	"trackify.backend/internal/infrastructure/repositories"
	"trackify.backend/internal/interfaces/http/handlers"
	"trackify.backend/internal/interfaces/http/middleware"
	"trackify.backend/internal/usecases"
	"trackify.backend/pkg/jwt"
	"trackify.backend/pkg/logger"
	"trackify.backend/pkg/metrics"
	"trackify.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := pgsource.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return gorm.Open(postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
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

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs idempotency keys and rate limits
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(context.Background(), "Connected to PostgreSQL")

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	emailConfigRepo := repositories.NewEmailConfigRepository(db)
	uow := repositories.NewUnitOfWork(db)

	gateway := notification.NewGateway(map[entities.EmailProvider]notification.Sender{
		entities.EmailProviderEmailJS: notification.NewEmailJSSender(cfg.Mail.EmailJSURL, cfg.Mail.Timeout),
		entities.EmailProviderSMTP: notification.NewSMTPSender(
			cfg.Mail.SMTPHost,
			cfg.Mail.SMTPPort,
			cfg.Mail.SMTPUser,
			cfg.Mail.SMTPPassword,
			cfg.Mail.SMTPFrom,
		),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, codeRepo, emailConfigRepo, gateway, uow, jwtService, usecases.AuthConfig{
		CodeTTL:        cfg.Auth.VerificationCodeTTL,
		VerifyLinkBase: cfg.Auth.VerifyLinkBase,
	})
	applicationUsecase := usecases.NewApplicationUsecase(applicationRepo)
	userUsecase := usecases.NewUserUsecase(userRepo)
	dashboardUsecase := usecases.NewDashboardUsecase(applicationRepo)

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewVerificationCodeExpiryJob(codeRepo, cfg.Auth.SweepInterval)
	go expiryJob.Start(ctx)

	r, err := newEngine(cfg.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(appMetrics))

	applyCORSMiddleware(r, cfg.Server.AllowedOrigin)
	registerHealthRoute(r)
	registerMetricsRoute(r, registry)
	registerRoutes(r, routeDeps{
		authHandler:        handlers.NewAuthHandler(authUsecase, appMetrics, cfg.Server.IsProduction()),
		applicationHandler: handlers.NewApplicationHandler(applicationUsecase),
		userHandler:        handlers.NewUserHandler(userUsecase, authUsecase),
		dashboardHandler:   handlers.NewDashboardHandler(dashboardUsecase),
		authMiddleware:     middleware.AuthMiddleware(jwtService),
		authRateLimit: func(bucket string) gin.HandlerFunc {
			return middleware.RateLimitMiddleware(bucket, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)
		},
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		expiryJob.Stop()
		cancel()
		_ = redis.Close()
	}()

	logger.Info(ctx, "Trackify backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
