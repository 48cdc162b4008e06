package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/cache"
	"github.com/erpworks/tablescout/internal/config"
	"github.com/erpworks/tablescout/internal/domain"
	logpkg "github.com/erpworks/tablescout/internal/logger"
	"github.com/erpworks/tablescout/internal/metrics"
	"github.com/erpworks/tablescout/internal/repository/catalog"
	"github.com/erpworks/tablescout/internal/repository/searchlog"
	"github.com/erpworks/tablescout/internal/server"
	openaiAssistant "github.com/erpworks/tablescout/internal/transport/openai"
	explainuc "github.com/erpworks/tablescout/internal/usecase/explain"
	healthuc "github.com/erpworks/tablescout/internal/usecase/health"
	keywordsuc "github.com/erpworks/tablescout/internal/usecase/keywords"
	searchuc "github.com/erpworks/tablescout/internal/usecase/search"
	"github.com/erpworks/tablescout/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tablescout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	// Create catalog store and log sink based on driver
	var (
		store   searchuc.CatalogStore
		pinger  healthuc.CatalogPinger
		logSink searchuc.LogSink
	)
	switch cfg.Database.Driver {
	case "redis":
		redisStore, err := catalog.NewRedis(catalog.RedisConfig{
			Addrs:     cfg.Database.Addrs,
			Password:  cfg.Database.Password,
			KeyPrefix: cfg.Database.KeyPrefix,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create catalog store", zap.Error(err))
		}
		defer redisStore.Close()

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Catalog store not ready", zap.Error(err))
		}
		if err := redisStore.Load(ctx); err != nil {
			logger.Fatal("Failed to load catalog", zap.Error(err))
		}

		store = redisStore
		pinger = redisStore
		logSink = searchlog.NewRedis(redisStore.Client(), cfg.Database.KeyPrefix)
	case "memory":
		memStore, err := catalog.NewMemoryFromFile(cfg.Database.SeedFile)
		if err != nil {
			logger.Fatal("Failed to load catalog seed", zap.Error(err))
		}
		store = memStore
		pinger = memStore
		logSink = searchlog.NopSink{}
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	logger.Info("Catalog store ready")

	// Assistant is optional: without an API key the pipeline runs on its
	// deterministic fallbacks. The interfaces stay nil when not configured,
	// never a typed nil pointer.
	var (
		kwAssistant  keywordsuc.Assistant
		expAssistant explainuc.Assistant
	)
	if cfg.Assistant.APIKey != "" {
		assistant := openaiAssistant.NewAssistant(&openaiAssistant.Config{
			APIKey:  cfg.Assistant.APIKey,
			BaseURL: cfg.Assistant.BaseURL,
			Model:   cfg.Assistant.Model,
			Timeout: time.Duration(cfg.Assistant.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		kwAssistant = assistant
		expAssistant = assistant
		logger.Info("Assistant created", zap.String("model", cfg.Assistant.Model))
	} else {
		logger.Warn("Assistant disabled, using deterministic fallbacks only")
	}

	// Result cache: the only state shared across requests.
	resultCache := cache.New(
		time.Duration(cfg.Search.CacheTTLSec)*time.Second,
		cfg.Search.CacheCapacity,
	)

	// Create use case services
	extractor := keywordsuc.New(kwAssistant, logger)
	explainer := explainuc.New(expAssistant, logger)
	searchSvc := searchuc.New(store, extractor, explainer, resultCache, logSink, logger).
		WithLimits(cfg.Search.DefaultLimit, time.Duration(cfg.Search.StoreTimeoutSec)*time.Second)
	healthSvc := healthuc.New(pinger)

	apiServer := server.New(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	apiServer.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns the search error
// envelope instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"success": false,
						"error":   "Internal server error",
						"results": []domain.MergedRecord{},
						"context": "error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
