// Package main реализует точку входа сервиса учета финансов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fintrack/internal/finance/adapters/cache"
	httpadapter "fintrack/internal/finance/adapters/http"
	"fintrack/internal/finance/adapters/postgres"
	"fintrack/internal/finance/adapters/services"
	"fintrack/internal/finance/app"
	"fintrack/internal/finance/config"
	"fintrack/internal/finance/db"
	cacheport "fintrack/internal/finance/ports/cache"
	"fintrack/internal/finance/resilience"
	"fintrack/pkg/logger"
	"fintrack/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FINTRACK_LOGGER_MODE"
	EnvLoggerLevel = "FINTRACK_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitServices         = "failed to initialize services"
	ErrCreateRedisClient    = "failed to create Redis client, stats cache disabled"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "finance service started"
	LogServiceShutdownDone = "finance service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing Redis client"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, EnvFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, &cfg.Migrations)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		userRepo := repoFactory.UserRepository()
		expenseRepo := repoFactory.ExpenseRepository()
		incomeRepo := repoFactory.IncomeRepository()

		// Кэш статистики необязателен: при недоступности Redis сервис работает без него.
		var statsBackend cacheport.Cache
		var redisCache *cache.RedisCache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
			} else {
				breaker := resilience.NewCircuitBreaker("redis", resilience.CircuitBreakerConfig{
					ErrorThreshold: cfg.Redis.BreakerThreshold,
					Timeout:        cfg.Redis.BreakerTimeout,
				})
				statsBackend = cache.NewGuardedCache(redisCache, breaker)
			}
		}

		log.Info(ctx, LogInitServices)
		serviceFactory, err := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.TokenTTL, cfg.JWT.BCryptCost)
		if err != nil {
			log.Error(ctx, ErrInitServices, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitUseCases)
		statsCache := app.NewStatsCache(statsBackend, cfg.Redis.DefaultTTL)
		deps := httpadapter.Dependencies{
			Auth:     app.NewAuthUseCase(userRepo, passwordService, tokenService),
			Gate:     app.NewAccessGate(userRepo, tokenService),
			Expenses: app.NewExpenseUseCase(expenseRepo, statsCache),
			Incomes:  app.NewIncomeUseCase(incomeRepo),
			Stats:    app.NewStatsUseCase(expenseRepo, statsCache),
			DB:       database,
			Debug:    cfg.Logging.IsDevelopment(),
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpadapter.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		}, deps.Debug)
		httpadapter.SetupRouter(fiberApp, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		serveCtx := shutdown.Background(ctx, func() error {
			return fiberApp.Listen(cfg.HTTP.GetAddress())
		})

		shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			func(ctx context.Context) error {
				if redisCache == nil {
					return nil
				}
				log.Info(ctx, LogClosingCache)
				return redisCache.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		if err := shutdown.Failure(serveCtx); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			exitCode = 1
			return
		}
		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
