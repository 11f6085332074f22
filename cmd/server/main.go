// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"shelfmate/internal/assistant"
	"shelfmate/internal/catalog"
	"shelfmate/internal/circulation"
	"shelfmate/internal/config"
	"shelfmate/internal/genai"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := initTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			logger.Fatal("failed to initialize tracing", zap.Error(err))
		}
		defer shutdown()
	}

	var hinter assistant.Hinter
	if cfg.GenAI.APIKey != "" {
		gemini, err := genai.NewGemini(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			// The hint source is best effort; run without it.
			logger.Warn("generative hint source disabled", zap.Error(err))
		} else {
			hinter = gemini
			logger.Info("generative hint source enabled", zap.String("model", cfg.GenAI.Model))
		}
	}

	catalogService := catalog.NewService(db, logger)
	circulationService := circulation.NewService(db, logger)
	assistantService := assistant.NewService(
		assistant.NewRuleExtractor(),
		assistant.NewResolver(catalogService),
		hinter,
		cfg.GenAI.Timeout,
		cfg.QueryRatePerMinute,
		cfg.QueryRateBurst,
		logger,
	)

	assistantHandler := assistant.NewHandler(assistantService)
	catalogHandler := catalog.NewHandler(catalogService)
	circulationHandler := circulation.NewHandler(circulationService)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Post("/api/query", assistantHandler.HandleQuery)
	router.Get("/api/books", catalogHandler.HandleList)
	router.Post("/api/books", catalogHandler.HandleAdd)
	router.Get("/api/books/{bookID}", catalogHandler.HandleGet)
	router.Post("/api/books/{bookID}/borrow", circulationHandler.HandleBorrow)
	router.Post("/api/books/{bookID}/return", circulationHandler.HandleReturn)
	router.Get("/api/books/{bookID}/history", circulationHandler.HandleHistory)

	logger.Info("starting library assistant", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func initTracer(ctx context.Context, endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return func() { _ = provider.Shutdown(context.Background()) }, nil
}
