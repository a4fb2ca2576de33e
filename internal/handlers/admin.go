package handlers

import (
	"net/http"
	"strconv"
	"time"

	"feedback-console/internal/dashboard"
	"feedback-console/internal/models"
	"feedback-console/internal/repository"

	"github.com/rs/zerolog"
)

// AdminHandler serves the read-only dashboard endpoints.
type AdminHandler struct {
	store repository.Store
	loc   *time.Location
	log   zerolog.Logger
}

func NewAdminHandler(store repository.Store, loc *time.Location, log zerolog.Logger) *AdminHandler {
	if loc == nil {
		loc = time.Local
	}
	return &AdminHandler{
		store: store,
		loc:   loc,
		log:   log.With().Str("component", "admin_handler").Logger(),
	}
}

func (h *AdminHandler) load(w http.ResponseWriter, r *http.Request) ([]models.FeedbackRecord, bool) {
	records, err := h.store.Load(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load feedback")
		writeError(w, http.StatusInternalServerError, "failed to load feedback")
		return nil, false
	}
	return records, true
}

// --- GET /admin/overview ---

func (h *AdminHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Summarize(records, h.loc))
}

// --- GET /admin/trend ---

func (h *AdminHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points": dashboard.Trend(records, h.loc),
	})
}

// --- GET /admin/actions?limit=&include_fallback= ---

func (h *AdminHandler) GetActions(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", dashboard.DefaultActionLimit)
	if err != nil || limit < 1 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	includeFallback := false
	if v := r.URL.Query().Get("include_fallback"); v != "" {
		includeFallback, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "include_fallback must be a boolean")
			return
		}
	}

	records, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"actions": dashboard.TopActions(records, limit, includeFallback),
	})
}

// --- GET /admin/reviews?min_rating= ---

func (h *AdminHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	minRating, err := intParam(r, "min_rating", 1)
	if err != nil || minRating < 1 || minRating > 5 {
		writeError(w, http.StatusBadRequest, "min_rating must be between 1 and 5")
		return
	}

	records, ok := h.load(w, r)
	if !ok {
		return
	}
	reviews := dashboard.Reviews(records, minRating, h.loc)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// --- GET /admin/export.csv ---

func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+dashboard.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := dashboard.WriteCSV(w, records); err != nil {
		h.log.Error().Err(err).Msg("failed to write csv export")
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
