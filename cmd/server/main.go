package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/staffcast/staffcast/internal/api"
	"github.com/staffcast/staffcast/internal/cache"
	"github.com/staffcast/staffcast/internal/config"
	"github.com/staffcast/staffcast/internal/feed"
	"github.com/staffcast/staffcast/internal/metrics"
	"github.com/staffcast/staffcast/internal/staffing"
	"github.com/staffcast/staffcast/internal/storage"
	"github.com/staffcast/staffcast/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting staffcast server")

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select the evaluation store
	dynamoCfg := storage.LoadDynamoConfig()
	var store storage.Store
	if dynamoCfg.Mode == storage.DynamoModeNone {
		log.Info().Msg("persistence disabled, using noop store")
		store = storage.NewNoopStore()
	} else {
		store, err = storage.NewDynamoDBStore(ctx, dynamoCfg, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize DynamoDB store")
		}
	}

	// Create the staffing engine and its result cache. The engine works
	// in hours internally; config values are in seconds.
	engine := staffing.NewEngineWithBound(cfg.DefaultAnswerTimeSecs/3600, cfg.MaxSearchAgents)
	resultCache := cache.NewResultCache(cfg.CacheCapacity, cfg.CacheTTL)
	evaluator := cache.NewCachedEvaluator(engine, resultCache)

	// Create the live staffing feed
	hub := feed.NewHub(log.Logger)
	go hub.Run()
	feedHandler := feed.NewHandler(hub, cfg, log.Logger)

	// Create the staffing API handler
	staffingHandler := api.NewStaffingHandler(evaluator, engine, store, hub, cfg.DefaultAnswerTimeSecs, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/staffing", func(r chi.Router) {
		r.Post("/evaluate", api.InstrumentEndpoint("/api/staffing/evaluate", staffingHandler.HandleEvaluate))
		r.Post("/required-agents", api.InstrumentEndpoint("/api/staffing/required-agents", staffingHandler.HandleRequiredAgents))
		r.Get("/history", api.InstrumentEndpoint("/api/staffing/history", staffingHandler.HandleHistory))
	})

	r.Get("/ws", feedHandler.ServeHTTP)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"staffcast"}`)
}
