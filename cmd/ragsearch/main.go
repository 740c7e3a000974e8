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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RajputKashish/endee-rag-search/internal/config"
	"github.com/RajputKashish/endee-rag-search/internal/endee"
	logpkg "github.com/RajputKashish/endee-rag-search/internal/logger"
	"github.com/RajputKashish/endee-rag-search/internal/metrics"
	vectorrepo "github.com/RajputKashish/endee-rag-search/internal/repository/vector"
	chiTransport "github.com/RajputKashish/endee-rag-search/internal/transport/chi"
	openaiEmb "github.com/RajputKashish/endee-rag-search/internal/transport/openai"
	bootstrapuc "github.com/RajputKashish/endee-rag-search/internal/usecase/bootstrap"
	healthuc "github.com/RajputKashish/endee-rag-search/internal/usecase/health"
	ingestuc "github.com/RajputKashish/endee-rag-search/internal/usecase/ingest"
	searchuc "github.com/RajputKashish/endee-rag-search/internal/usecase/search"
	"github.com/RajputKashish/endee-rag-search/internal/version"
)

func main() {
	// Optional .env for local runs; config expansion reads the environment.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting rag-search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("endee_base_url", cfg.Endee.BaseURL),
		zap.String("index", cfg.Endee.IndexName),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Embedding provider is constructed once here and injected everywhere;
	// no lazy module-level state.
	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	// Endee vector store client + domain-native repository
	endeeClient := endee.NewClient(endee.Config{
		BaseURL: cfg.Endee.BaseURL,
		Token:   cfg.Endee.AuthToken,
		Timeout: time.Duration(cfg.Endee.TimeoutSec) * time.Second,
	})
	repo := vectorrepo.New(endeeClient, cfg.Endee.IndexName, cfg.Embedding.Dimensions, cfg.Endee.SpaceType)

	// Use case services
	ingestSvc := ingestuc.New(embedder, repo)
	searchSvc := searchuc.New(embedder, repo)
	healthSvc := healthuc.New(repo, embedder)

	// One-shot startup phase: warm up the provider, ensure the index exists.
	ctx := context.Background()
	boot := bootstrapuc.New(embedder, repo, logger)
	if err := boot.Run(ctx); err != nil {
		logger.Fatal("Bootstrap failed", zap.Error(err))
	}

	server := chiTransport.NewServer(ingestSvc, searchSvc, healthSvc, cfg.Web.Dir, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
