package main

import (
	"net/http"

	"feedback-console/internal/handlers"
	customMiddleware "feedback-console/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func newRouter(
	feedbackHandler *handlers.FeedbackHandler,
	adminHandler *handlers.AdminHandler,
	gatherer prometheus.Gatherer,
	corsOrigins []string,
	log zerolog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"feedback-console"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// End-user submission
	r.Post("/feedback", feedbackHandler.SubmitFeedback)

	// Admin dashboard (read-only)
	r.Route("/admin", func(r chi.Router) {
		r.Get("/overview", adminHandler.GetOverview)
		r.Get("/trend", adminHandler.GetTrend)
		r.Get("/actions", adminHandler.GetActions)
		r.Get("/reviews", adminHandler.GetReviews)
		r.Get("/export.csv", adminHandler.ExportCSV)
	})

	return r
}
