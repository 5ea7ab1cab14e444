// cmd/nlu-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"inventory-nlu/internal/common/cache"
	"inventory-nlu/internal/common/config"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/common/observability"
	"inventory-nlu/internal/nlu/detector"
	"inventory-nlu/internal/nlu/extractor"
	"inventory-nlu/internal/nlu/lexicon"
	"inventory-nlu/internal/nlu/parser"
	"inventory-nlu/internal/server"
	"inventory-nlu/internal/service"
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
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting nlu-server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("nlu-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Vocabulary ---
	lex := lexicon.Default()
	if path := cfg.NLU.Lexicon.RegistryPath; path != "" {
		lex, err = lexicon.LoadFile(path)
		if err != nil {
			zapLog.Fatal("lexicon registry load failed", zap.Error(err), zap.String("path", path))
		}
		zapLog.Info("Lexicon registry loaded", zap.String("path", path))
	}

	// --- Pipeline ---
	ext := extractor.New(lex, extractor.Weights{
		Title:     cfg.NLU.Extractor.TitleWeight,
		Author:    cfg.NLU.Extractor.AuthorWeight,
		Price:     cfg.NLU.Extractor.PriceWeight,
		Quantity:  cfg.NLU.Extractor.QuantityWeight,
		Location:  cfg.NLU.Extractor.LocationWeight,
		Condition: cfg.NLU.Extractor.ConditionWeight,
	}, log)
	det := detector.New(lex, ext, log)
	p := parser.New(parser.Config{MinFieldLength: cfg.NLU.Parser.MinFieldLength}, log)

	// --- Init result cache with retry ---
	resultCache := cache.New(cfg.Cache, log)
	if resultCache != nil {
		err = retryWithBackoff(func() error {
			return resultCache.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			// The cache is best-effort; start without it rather than refusing
			// to serve.
			zapLog.Warn("redis unavailable, continuing without result cache", zap.Error(err))
			resultCache.Close()
			resultCache = nil
		} else {
			zapLog.Info("Redis connected successfully")
		}
	}
	defer resultCache.Close()

	svc := service.New(det, ext, p, resultCache, obs, log)
	srv := server.New(cfg.Server, svc, resultCache, log)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("nlu-server stopped gracefully")
}
