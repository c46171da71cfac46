// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"swipeshop-backend/internal/ai/genai"
	"swipeshop-backend/internal/ai/optimizer"
	"swipeshop-backend/internal/ai/ranker"
	"swipeshop-backend/internal/catalog"
	"swipeshop-backend/internal/common/cache"
	"swipeshop-backend/internal/common/config"
	"swipeshop-backend/internal/common/database"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/observability"
	"swipeshop-backend/internal/httpapi"
	"swipeshop-backend/internal/search"
	"swipeshop-backend/internal/store"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting api-server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("api-server")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Persistence ---
	st, err := store.New(redis, log)
	if err != nil {
		zapLog.Fatal("store init failed", zap.Error(err))
	}

	// --- AI pipeline ---
	genaiClient := genai.NewClient(genai.Config{
		BaseURL: cfg.APIs.GenAI.BaseURL,
		APIKey:  cfg.APIs.GenAI.APIKey,
		Model:   cfg.APIs.GenAI.Model,
	})
	if !genaiClient.Configured() {
		zapLog.Warn("GenAI API key missing; searches will use deterministic fallbacks")
	}

	aiTTL := config.GetDuration(cfg.Cache.AITTL)
	sweepInterval := config.GetDuration(cfg.Cache.SweepInterval)

	optimizerCache := cache.New[optimizer.Result](aiTTL)
	optimizerCache.StartSweeper(ctx, sweepInterval)
	optimizerHandler := optimizer.NewHandler(
		&optimizer.Config{
			Timeout:  config.GetDuration(cfg.APIs.GenAI.OptimizerTimeout),
			CacheTTL: aiTTL,
		},
		genaiClient, optimizerCache, log,
	)

	rankerCache := ranker.NewCache(aiTTL)
	rankerCache.StartSweeper(ctx, sweepInterval)
	rankerHandler := ranker.NewHandler(
		&ranker.Config{
			Timeout:       config.GetDuration(cfg.APIs.GenAI.RankerTimeout),
			CacheTTL:      aiTTL,
			MaxCandidates: cfg.Search.MaxRanked,
			Temperature:   cfg.APIs.GenAI.RankerTemp,
			MaxTokens:     cfg.APIs.GenAI.RankerMaxTokens,
		},
		genaiClient, rankerCache, log,
	)

	catalogClient := catalog.NewClient(
		&catalog.Config{
			BaseURL:    cfg.APIs.Catalog.BaseURL,
			APIKey:     cfg.APIs.Catalog.APIKey,
			Timeout:    config.GetDuration(cfg.APIs.Catalog.Timeout),
			Country:    cfg.APIs.Catalog.Country,
			Language:   cfg.APIs.Catalog.Language,
			MinReviews: cfg.APIs.Catalog.MinReviews,
		},
		log,
	)

	orchestrator := search.NewOrchestrator(
		&search.Config{MaxCandidates: cfg.Search.MaxCandidates},
		optimizerHandler, catalogClient, rankerHandler, st, log,
	)

	// --- HTTP Server ---
	server := httpapi.NewServer(orchestrator, st, log, obs)
	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("api-server stopped gracefully")
}
