package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Stored feedback submissions by rating",
	}, []string{"rating"})

	AnalysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_analysis_total",
		Help: "Feedback analyses by outcome",
	}, []string{"outcome"})

	AnalysisFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_analysis_failures_total",
		Help: "Failed feedback analyses by reason",
	}, []string{"reason"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_generation_duration_seconds",
		Help:    "Duration of text generation calls",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60},
	}, []string{"model", "status"})

	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of feedback store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation", "status"})
)

// MustRegister registers every collector of this package.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		SubmissionsTotal,
		AnalysisTotal,
		AnalysisFailuresTotal,
		LLMGenerationDuration,
		StoreOperationDuration,
	)
}

func ObserveSubmission(rating int) {
	SubmissionsTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// ObserveAnalysis counts an analysis; reason is ignored for successful ones.
func ObserveAnalysis(fallback bool, reason string) {
	if !fallback {
		AnalysisTotal.WithLabelValues(OutcomeOK).Inc()
		return
	}
	AnalysisTotal.WithLabelValues(OutcomeFallback).Inc()
	if reason == "" {
		reason = "unknown"
	}
	AnalysisFailuresTotal.WithLabelValues(reason).Inc()
}

func ObserveGeneration(model string, start time.Time, err error) {
	if model == "" {
		model = "unknown"
	}
	LLMGenerationDuration.WithLabelValues(model, status(err)).Observe(time.Since(start).Seconds())
}

func ObserveStore(backend, operation string, start time.Time, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation, status(err)).Observe(time.Since(start).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
