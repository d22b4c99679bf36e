// Команда stubapi запускает тестовый API магазина для локальной разработки storefront.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"shopfront/internal/stubapi/config"
	stubhttp "shopfront/internal/stubapi/http"
	"shopfront/internal/stubapi/passwords"
	"shopfront/internal/stubapi/shop"
	"shopfront/internal/stubapi/tokens"
	"shopfront/pkg/logger"
	"shopfront/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "STUBAPI_LOGGER_MODE"
	EnvLoggerLevel = "STUBAPI_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateIssuer         = "failed to create token issuer"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "stub api started"
	LogServiceShutdownDone = "stub api shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStore           = "initializing shop store"
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

		cfg, err := config.Load(ctx, "")
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

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		issuer, err := tokens.NewIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, nil)
		if err != nil {
			log.Error(ctx, ErrCreateIssuer, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStore)
		store := shop.NewStore(passwords.NewBcrypt(cfg.JWT.BCryptCost), shop.DefaultCatalog(), nil)

		server := stubhttp.NewServer(&cfg.HTTP, store, issuer, nil)

		serveCtx, stopServe := context.WithCancel(ctx)
		defer stopServe()

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		serveErr := make(chan error, 1)
		go func() {
			serveErr <- server.ListenAndServe()
			stopServe()
		}()

		err = shutdown.Wait(serveCtx, cfg.Shutdown.Timeout,
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.Shutdown(ctx)
			},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		select {
		case err := <-serveErr:
			if err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				exitCode = 1
			}
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
