package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "video_access_service/cmd/playback_service/docs"
	"video_access_service/internal/playback/api/handlers"
	"video_access_service/internal/playback/api/router"
	"video_access_service/internal/playback/app"
	"video_access_service/internal/playback/repository"
	"video_access_service/pkg/config"
	"video_access_service/pkg/database"
	"video_access_service/pkg/delivery"
	"video_access_service/pkg/logger"
	testtool "video_access_service/pkg/test_tool"
	"video_access_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

type migrator interface {
	AutoMigrate() error
}

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.Playback, config.EnvConfig.PlaybackLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.Playback](config.EnvConfig.Playback, config.EnvConfig.PlaybackYAMLPath)
	if config.EnvConfig.PlaybackPort != "" {
		cfg.Port = config.EnvConfig.PlaybackPort
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("invalid playback configuration", zap.Error(err))
	}
	token.SetSecret(cfg.JWTSecret)

	// 1. PostgreSQL: gorm for admin tables, pgx for the license hot path
	dsn := cfg.PostgreSQL.DSN()
	pgConn := database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	}
	db, err := database.NewPGConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries",
			zap.String("host", cfg.PostgreSQL.Host), zap.Error(err))
	}
	pool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to open pgx pool after retries",
			zap.String("host", cfg.PostgreSQL.Host), zap.Error(err))
	}
	defer pool.Close()

	assetRepo := repository.NewVideoAssetRepo(db)
	groupRepo := repository.NewVideoGroupRepo(db)
	accountTypeRepo := repository.NewAccountTypeRepo(db)
	userTypeRepo := repository.NewUserAccountTypeRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	licenseRepo := repository.NewLicenseRepo(pool)

	for _, m := range []migrator{assetRepo, groupRepo, accountTypeRepo, userTypeRepo, auditRepo} {
		if err := m.AutoMigrate(); err != nil {
			logger.Log.Fatal("table migration failed", zap.Error(err))
		}
	}
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), cfg.QueryTimeout())
	if err := licenseRepo.Migrate(migrateCtx); err != nil {
		logger.Log.Fatal("license table migration failed", zap.Error(err))
	}
	cancelMigrate()

	// 2. Redis entitlement cache
	if cfg.Redis.Enabled {
		masterName, sentinels := config.GetRedisSetting()
		client, err := database.NewRedisClient(masterName, sentinels, cfg.Redis.RedisDB)
		if err != nil {
			logger.Log.Fatal("Unable to connect to redis", zap.Strings("sentinels", sentinels), zap.Error(err))
		}
		defer client.Close()
		cache := database.NewRedisRepository[repository.AccountTypeCacheEntry](client, repository.AccountTypeCachePrefix)
		accountTypeRepo = repository.NewCachedAccountTypeRepo(accountTypeRepo, cache, cfg.CacheTTL())
	}

	// 3. delivery signer
	signer, err := newSigner(cfg)
	if err != nil {
		logger.Log.Fatal("Unable to build delivery signer", zap.String("strategy", cfg.Delivery.Strategy), zap.Error(err))
	}

	// 4. audit sink
	publisher, closeSink := newAuditPublisher(cfg.Audit)
	defer closeSink()

	timeout := cfg.QueryTimeout()
	accountUseCase := app.NewAccountUseCase(accountTypeRepo, groupRepo, userTypeRepo, config.FallbackAccountType, timeout)
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), timeout)
	if err := accountUseCase.SeedDefaults(seedCtx); err != nil {
		logger.Log.Fatal("seed default account type failed", zap.Error(err))
	}
	cancelSeed()

	assetUseCase := app.NewAssetUseCase(assetRepo, timeout)
	resolver := app.NewEntitlementResolver(assetRepo, groupRepo, accountTypeRepo, userTypeRepo, cfg.AccountTypeFallbacks())
	licenseUseCase := app.NewLicenseUseCase(licenseRepo, resolver, timeout)
	playbackUseCase := app.NewPlaybackUseCase(licenseUseCase, assetUseCase, signer, cfg.SignedURLTTL())
	groupUseCase := app.NewGroupUseCase(groupRepo, assetRepo, timeout)
	auditUseCase := app.NewAuditUseCase(auditRepo, publisher, timeout)

	testtool.StartPprof()

	// 5. HTTP
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.PlaybackLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open access log file", zap.Error(err))
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	adminRole := cfg.AdminRole
	if strings.TrimSpace(adminRole) == "" {
		adminRole = string(token.RoleAdmin)
	}
	router.RegisterRoutes(r,
		handlers.NewUserVideoHandler(playbackUseCase, licenseUseCase),
		handlers.NewAdminHandler(assetUseCase, groupUseCase, accountUseCase, licenseUseCase, auditUseCase),
		adminRole,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Log.Info("shutting down playback service")
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := cfg.IP + ":" + cfg.Port
	logger.Log.Info("playback service listening", zap.String("addr", addr), zap.String("strategy", signer.Strategy()))
	if err := r.Listen(addr); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

func newSigner(cfg config.Playback) (delivery.DeliverySigner, error) {
	if !strings.EqualFold(strings.TrimSpace(cfg.Delivery.Strategy), config.DeliveryS3) {
		return delivery.NewSigner(cfg.Delivery, nil)
	}
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:   fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:       cfg.MinIO.User,
		Password:   cfg.MinIO.Password,
		BucketName: cfg.MinIO.BucketName,
		UseSSL:     cfg.MinIO.UseSSL,

		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		return nil, err
	}
	return delivery.NewSigner(cfg.Delivery, minioClient)
}

// newAuditPublisher the returned func releases broker resources
func newAuditPublisher(cfg config.AuditConfig) (repository.AuditPublisher, func()) {
	switch strings.ToLower(strings.TrimSpace(cfg.Sink)) {
	case config.AuditSinkRabbitMQ:
		rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    rabbitURL,
			RetryCount:    cfg.RabbitMQ.RetryCount,
			RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("RabbitMQ connection failed", zap.Error(err))
		}
		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
		if err != nil {
			logger.Log.Fatal("RabbitMQ channel failed", zap.Error(err))
		}
		return repository.NewRabbitAuditPublisher(database.NewRabbitRepository(ch), cfg.RabbitMQ.Queue), func() {
			_ = ch.Close()
			_ = conn.Close()
		}
	case config.AuditSinkKafka:
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("Kafka writer creation failed", zap.Error(err))
		}
		return repository.NewKafkaAuditPublisher(writer), func() {
			_ = writer.Close()
		}
	}
	return repository.NewNoopAuditPublisher(), func() {}
}
