package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/config"
	"github.com/tenantkit/backend/internal/handler"
	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/repository/postgres"
	"github.com/tenantkit/backend/internal/service"
	"github.com/tenantkit/backend/pkg/blacklist"
	"github.com/tenantkit/backend/pkg/email"
	"github.com/tenantkit/backend/pkg/jwt"
	"github.com/tenantkit/backend/pkg/logger"
	"github.com/tenantkit/backend/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := initDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := initRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	privateKey, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}
	publicKey, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	tokenService, err := jwt.NewTokenService(
		privateKey, publicKey,
		cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		return fmt.Errorf("failed to build token service: %w", err)
	}

	tokenBlacklist := blacklist.NewTokenBlacklist(redisClient)
	validate := validator.NewValidator()

	var emailSender email.Sender
	if cfg.Email.Enabled {
		emailSender, err = email.NewResendSender(email.Config{
			APIKey:    cfg.Email.APIKey,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			return fmt.Errorf("failed to build email sender: %w", err)
		}
	}

	tenantRepo := postgres.NewTenantRepository(db)
	userRepo := postgres.NewUserRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	socialRepo := postgres.NewSocialLinkRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	txManager := postgres.NewTxManager(db)

	authService := service.NewAuthService(userRepo, tokenService, tokenBlacklist, log)
	tenantService := service.NewTenantService(tenantRepo, userRepo, txManager, validate, cfg.Auth.PasswordMinLength, log)
	userService := service.NewUserService(userRepo, tenantRepo, emailSender, validate, cfg.Auth.PasswordMinLength, log)
	documentService := service.NewDocumentService(documentRepo, validate, log)
	socialService := service.NewSocialLinkService(socialRepo, validate, log)
	chatService := service.NewChatService(chatRepo, validate, log)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(promRegistry)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: handler.NewErrorHandler(log),
	})

	app.Use(middleware.Recovery(log))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.CORS(cfg.Server.AllowOrigins))

	handler.SetupRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, validate),
		Tenant:     handler.NewTenantHandler(tenantService),
		User:       handler.NewUserHandler(userService),
		Document:   handler.NewDocumentHandler(documentService),
		SocialLink: handler.NewSocialLinkHandler(socialService),
		Chat:       handler.NewChatHandler(chatService),
		Health:     handler.NewHealthHandler(db, redisClient),
	}, authService, metrics, promRegistry)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			return fmt.Errorf("failed to shut down gracefully: %w", err)
		}
	}
	return nil
}

// initDB connects with a short retry loop so the service survives a database
// that comes up a few seconds after it does.
func initDB(cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	for attempt := 1; attempt <= 5; attempt++ {
		db, err = sqlx.Connect("postgres", cfg.Database.DSN())
		if err == nil {
			break
		}
		log.Warn("database not ready, retrying",
			zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
