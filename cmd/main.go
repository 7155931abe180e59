package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/api/http/middleware"
	"github.com/dtroode/tutordash-web/internal/api/http/router"
	httpServer "github.com/dtroode/tutordash-web/internal/api/http/server"
	"github.com/dtroode/tutordash-web/internal/backend"
	"github.com/dtroode/tutordash-web/internal/config"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/server"
	"github.com/dtroode/tutordash-web/internal/service"
	"github.com/dtroode/tutordash-web/internal/session"
	"github.com/dtroode/tutordash-web/internal/storage/memory"
	miniostore "github.com/dtroode/tutordash-web/internal/storage/minio"
	pgstore "github.com/dtroode/tutordash-web/internal/storage/postgres"
	redisstore "github.com/dtroode/tutordash-web/internal/storage/redis"
	"github.com/dtroode/tutordash-web/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	kv, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeStorage()
	logger.Info("session storage ready", "driver", cfg.Storage.Driver)

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	registry := session.NewRegistry(kv, backendClient, logger, session.RegistryConfig{
		IdleTTL:           cfg.Session.IdleTTL,
		MaxLive:           cfg.Session.MaxLive,
		AllowDualIdentity: cfg.Session.AllowDualIdentity,
	})

	tokenManager := token.NewJWT(cfg.Cookie.Secret, cfg.Cookie.TTL)
	tokenService := service.NewTokenService(tokenManager, logger)
	authService := service.NewAuth(backendClient, logger, service.WithGoogleLoginURL(cfg.Backend.GoogleLoginURL))
	viewsService := service.NewViews(backendClient, logger)

	r := router.New(
		authService,
		viewsService,
		backendClient,
		tokenService,
		registry,
		apictx.NewManager(),
		middleware.CookieConfig{
			Name:   cfg.Cookie.Name,
			TTL:    cfg.Cookie.TTL,
			Secure: cfg.Cookie.Secure,
		},
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		registry.Run(ctx, sweepInterval)
	}()
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openStorage connects the persisted tier chosen by STORAGE_DRIVER. The
// returned func releases its connections.
func openStorage(ctx context.Context, cfg *config.Config) (model.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisstore.NewStore(client, cfg.Redis.Prefix)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to reach redis: %w", err)
		}
		return store, func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		conn, err := pgstore.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, noop, err
		}
		return pgstore.NewStore(conn.DB()), func() { _ = conn.Close() }, nil

	case config.DriverMinio:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create minio client: %w", err)
		}
		store, err := miniostore.NewClient(ctx, client, cfg.Minio.Bucket)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	default:
		return memory.NewStore(), noop, nil
	}
}
