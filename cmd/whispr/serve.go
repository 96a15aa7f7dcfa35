package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whispr/internal/diary/adapters/cache"
	diaryhttp "whispr/internal/diary/adapters/http"
	"whispr/internal/diary/adapters/postgres"
	"whispr/internal/diary/adapters/services"
	"whispr/internal/diary/adapters/storage"
	"whispr/internal/diary/app"
	"whispr/internal/diary/db"
	"whispr/internal/diary/resilience"
	redisdb "whispr/pkg/db/redis"
	"whispr/pkg/logger"
	"whispr/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "whispr service started"
	LogServiceShutdownDone = "whispr service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing day cache"
	LogCacheDisabled       = "day cache disabled"
	LogInitStorage         = "initializing image storage"
	LogInitServices        = "initializing services"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingCache        = "closing Redis connection"

	ErrCreateDatabase  = "failed to initialize database"
	ErrCreateCache     = "failed to initialize Redis cache"
	ErrCreateStorage   = "failed to initialize image storage"
	ErrStartHTTPServer = "failed to start HTTP server"

	imageStorageService = "image_storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(*cobra.Command, []string) error {
	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := appConfig
	log := logger.Log(ctx)

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitDatabase)
	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		log.Error(ctx, ErrCreateDatabase, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateDatabase, err)
	}
	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingDatabase)
			database.Close(ctx)
			return nil
		},
	}

	var entryOpts []app.EntryOption
	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache)
		client, err := redisdb.NewClient(ctx, redisdb.NewConfig(&cfg.Redis))
		if err != nil {
			log.Error(ctx, ErrCreateCache, zap.Error(err))
			database.Close(ctx)
			return fmt.Errorf("%s: %w", ErrCreateCache, err)
		}
		dayCache := cache.NewRedisCache(client, cfg.Redis.DayTTL)
		entryOpts = append(entryOpts, app.WithDayCache(dayCache, cfg.Redis.DayTTL))
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogClosingCache)
			return dayCache.Close()
		})
	} else {
		log.Info(ctx, LogCacheDisabled)
	}

	log.Info(ctx, LogInitStorage, zap.String("bucket", cfg.Storage.Bucket))
	imageStore, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		log.Error(ctx, ErrCreateStorage, zap.Error(err))
		shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
		return fmt.Errorf("%s: %w", ErrCreateStorage, err)
	}

	log.Info(ctx, LogInitServices)
	repos := postgres.NewRepositoryFactory(database.Pool())
	svcFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.BCryptCost)

	entryUseCase := app.NewEntryUseCase(repos.EntryRepository(), entryOpts...)
	authUseCase := app.NewAuthUseCase(repos.UserRepository(), svcFactory.PasswordService(), svcFactory.TokenService())
	imageUseCase := app.NewImageUseCase(imageStore, resilience.NewServiceResilience(imageStorageService), app.ImageConfig{
		Folder:   cfg.Storage.Folder,
		MaxBytes: cfg.Storage.GetMaxUploadBytes(),
	})

	server := diaryhttp.NewApp(&cfg.HTTP)
	diaryhttp.SetupRouter(server, diaryhttp.Dependencies{
		Auth:         authUseCase,
		Entries:      entryUseCase,
		Images:       imageUseCase,
		Tokens:       svcFactory.TokenService(),
		CookieSecure: cfg.JWT.CookieSecure,
	})

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	listenErr := make(chan error, 1)
	go func() {
		if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			listenErr <- err
			cancel()
		}
	}()

	// HTTP сервер останавливается раньше пула и кэша.
	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
		log.Info(ctx, LogStoppingHTTP)
		if err := server.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
		}
		shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
		return nil
	})

	log.Info(ctx, LogServiceShutdownDone)

	select {
	case err := <-listenErr:
		return fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
	default:
		return nil
	}
}
