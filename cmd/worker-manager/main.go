// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"career-workers/internal/api"
	"career-workers/internal/cache"
	"career-workers/internal/career"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/observability"
	"career-workers/internal/history"
	"career-workers/internal/recommendation"
	"career-workers/pkg/registry"

	rc "career-workers/internal/workers/career/recommend-career"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel meter provider unavailable", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Redis result cache ---
	checks := map[string]api.Pinger{}
	var redisClient *database.RedisClient
	if cfg.Database.Redis.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		checks["redis"] = redisClient
		zapLog.Info("Redis connected successfully")
	}

	// --- PostgreSQL history ---
	var store history.Store
	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		pgStore := history.NewPostgresStore(pg.DB)
		if err := pgStore.Migrate(ctx); err != nil {
			zapLog.Fatal("history migration failed", zap.Error(err))
		}
		store = pgStore
		checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")
	}

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}

	workerCfg, err := rc.LoadConfig(cfg, reg)
	if err != nil {
		zapLog.Fatal("invalid recommend-career configuration", zap.Error(err))
	}

	var recCache *cache.RecommendationCache
	if redisClient != nil {
		recCache = cache.New(redisClient.Client, workerCfg.CacheTTL)
	}

	service, err := career.NewService(career.Options{
		Strategies:    recommendation.NewRegistry(),
		Strategy:      cfg.Recommendation.Strategy,
		Cache:         recCache,
		History:       store,
		Observability: obs,
		Logger:        log,
	})
	if err != nil {
		zapLog.Fatal("recommendation service init failed", zap.Error(err))
	}

	// --- Zeebe worker ---
	var jobWorker *camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		client, err := camunda.NewClient(ctx, camunda.ClientConfigFrom(cfg.Camunda))
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer client.Close()
		checks["zeebe"] = client
		zapLog.Info("Zeebe client connected successfully")

		if workerCfg.Enabled {
			jobWorker = camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
				TaskType:      rc.TaskType,
				MaxJobsActive: workerCfg.MaxJobsActive,
				Timeout:       workerCfg.Timeout,
			}, rc.NewHandler(workerCfg, service, log), log)
		} else {
			zapLog.Info("worker disabled", zap.String("taskType", rc.TaskType))
		}
	}

	// --- Career API, health & metrics ---
	var server *http.Server
	if cfg.HTTP.Enabled {
		server = api.NewServer(api.Options{
			Service: service,
			Config:  cfg.HTTP,
			Logger:  log,
			Checks:  checks,
		})
		go func() {
			zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
			if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				zapLog.Error("HTTP server failed", zap.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}
	if jobWorker != nil {
		jobWorker.Stop()
	}

	zapLog.Info("Worker manager stopped")
}
