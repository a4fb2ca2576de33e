package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-console/internal/analyzer"
	"feedback-console/internal/config"
	"feedback-console/internal/database"
	"feedback-console/internal/handlers"
	"feedback-console/internal/logger"
	"feedback-console/internal/metrics"
	"feedback-console/internal/notify"
	"feedback-console/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config is not known yet
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.AppEnv)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(registry)

	store, db := buildStore(ctx, cfg, log)
	if db != nil {
		defer func() {
			if err := database.Disconnect(context.Background(), db); err != nil {
				log.Warn().Err(err).Msg("failed to disconnect from MongoDB")
			}
		}()
	}

	var generator analyzer.Generator = analyzer.DisabledGenerator{}
	gemini, err := analyzer.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	switch {
	case errors.Is(err, analyzer.ErrNoAPIKey):
		log.Warn().Msg("GEMINI_API_KEY not set, every submission will receive the fallback analysis")
	case err != nil:
		log.Error().Err(err).Msg("failed to create Gemini client, every submission will receive the fallback analysis")
	default:
		generator = gemini
	}
	feedbackAnalyzer := analyzer.New(generator, cfg.Gemini.Timeout, log)

	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.AlertsEnabled() {
		notifier = notify.NewResendNotifier(cfg.Alerts.ResendAPIKey, cfg.Alerts.From, cfg.Alerts.To, log)
	} else {
		log.Info().Msg("email alerts not configured, critical feedback alerts go to the log")
	}

	feedbackHandler := handlers.NewFeedbackHandler(feedbackAnalyzer, store, notifier, loc, log)
	adminHandler := handlers.NewAdminHandler(store, loc, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(feedbackHandler, adminHandler, registry, cfg.CORSOrigins, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("feedback console starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func buildStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (repository.Store, *mongo.Database) {
	if cfg.Store.Backend != config.BackendMongo {
		return repository.NewFileStore(cfg.Store.DataFile, log), nil
	}

	db, err := database.Connect(ctx, cfg.Store.MongoURI, cfg.Store.DBName, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	repo := repository.NewFeedbackRepo(db, log)

	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(idxCtx); err != nil {
		log.Warn().Err(err).Msg("failed to create feedback indexes")
	}
	return repo, db
}
