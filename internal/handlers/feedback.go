package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"feedback-console/internal/analyzer"
	"feedback-console/internal/metrics"
	"feedback-console/internal/models"
	"feedback-console/internal/notify"
	"feedback-console/internal/repository"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	minRating = 1
	maxRating = 5

	persistTimeout = 10 * time.Second
)

// FeedbackAnalyzer never fails; on error it returns the fallback analysis.
type FeedbackAnalyzer interface {
	Analyze(ctx context.Context, rating int, review string) analyzer.Analysis
}

type FeedbackHandler struct {
	analyzer FeedbackAnalyzer
	store    repository.Store
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

func NewFeedbackHandler(a FeedbackAnalyzer, store repository.Store, notifier notify.Notifier, loc *time.Location, log zerolog.Logger) *FeedbackHandler {
	if loc == nil {
		loc = time.Local
	}
	return &FeedbackHandler{
		analyzer: a,
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		log:      log.With().Str("component", "feedback_handler").Logger(),
	}
}

type SubmitFeedbackRequest struct {
	Rating *int   `json:"rating"`
	Review string `json:"review"`
}

type SubmitFeedbackResponse struct {
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	AIResponse string `json:"ai_response"`
	AISummary  string `json:"ai_summary"`
	AIAction   string `json:"ai_action"`
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required")
		return
	}
	rating := *req.Rating
	if rating < minRating || rating > maxRating {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if strings.TrimSpace(req.Review) == "" {
		writeError(w, http.StatusBadRequest, "review is required")
		return
	}

	analysis := h.analyzer.Analyze(r.Context(), rating, req.Review)

	record := models.FeedbackRecord{
		Timestamp:  models.FormatTimestamp(h.now().In(h.loc)),
		Rating:     rating,
		Review:     req.Review,
		AIResponse: analysis.UserResponse,
		AISummary:  analysis.Summary,
		AIAction:   analysis.Action,
	}

	// The analysis may outlive the client; the record is stored regardless.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), persistTimeout)
	defer cancel()

	if err := h.store.Append(persistCtx, record); err != nil {
		h.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("failed to store feedback")
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}
	metrics.ObserveSubmission(rating)

	if record.IsCritical() && h.notifier != nil {
		if err := h.notifier.Publish(persistCtx, notify.FormatCriticalAlert(record)); err != nil {
			h.log.Warn().Err(err).Msg("failed to publish critical feedback alert")
		}
	}

	writeJSON(w, http.StatusCreated, SubmitFeedbackResponse{
		Message:    "feedback submitted successfully",
		Timestamp:  record.Timestamp,
		AIResponse: record.AIResponse,
		AISummary:  record.AISummary,
		AIAction:   record.AIAction,
	})
}
