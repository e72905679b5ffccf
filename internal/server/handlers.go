package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"TrendEngine/internal/analysis"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

const (
	defaultListLimit = 20
	maxAnalyzeBody   = 8 << 20
)

type handlers struct {
	repo     ports.SnapshotRepository
	registry *analysis.Registry
	topN     int
	logger   *slog.Logger
}

type briefView struct {
	ID             string           `json:"id"`
	Date           string           `json:"date"`
	BriefNumber    int              `json:"brief_number"`
	Theme          string           `json:"theme"`
	StrategySource string           `json:"strategy_source,omitempty"`
	Summary        string           `json:"summary"`
	CreatedAt      time.Time        `json:"created_at"`
	Snapshot       *domain.Snapshot `json:"snapshot,omitempty"`
}

func viewOf(record domain.BriefRecord, withSnapshot bool) briefView {
	v := briefView{
		ID:             record.ID,
		Date:           record.Date,
		BriefNumber:    record.BriefNumber,
		Theme:          record.Theme,
		StrategySource: record.StrategySource,
		Summary:        record.Summary,
		CreatedAt:      record.CreatedAt,
	}
	if withSnapshot {
		snap := record.Snapshot
		v.Snapshot = &snap
	}
	return v
}

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	Current    *domain.Snapshot `json:"current"`
	Prior      *domain.Snapshot `json:"prior"`
	PriorTheme string           `json:"prior_theme"`
	Date       string           `json:"date"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if h.repo != nil {
		count, err := h.repo.Count(r.Context())
		if err != nil {
			h.respondWithError(w, http.StatusServiceUnavailable, "storage unavailable", err)
			return
		}
		resp["briefs"] = count
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *handlers) listBriefs(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondWithError(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		limit = n
	}

	records, err := h.repo.List(r.Context(), limit)
	if err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "failed to list briefs", err)
		return
	}

	views := make([]briefView, 0, len(records))
	for _, record := range records {
		views = append(views, viewOf(record, false))
	}
	respondWithJSON(w, http.StatusOK, views)
}

func (h *handlers) latestBrief(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}
	record, err := h.repo.Latest(r.Context())
	h.respondWithRecord(w, record, err)
}

func (h *handlers) briefByDate(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}
	record, err := h.repo.ByDate(r.Context(), date)
	h.respondWithRecord(w, record, err)
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody))
	if err := dec.Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Current == nil {
		h.respondWithError(w, http.StatusBadRequest, "current snapshot is required", nil)
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	brief := analysis.Analyze(h.registry, analysis.Input{
		Current:    analysis.Prepare(*req.Current, req.Prior),
		Prior:      req.Prior,
		PriorTheme: req.PriorTheme,
		Day:        day,
		TopN:       h.topN,
	})
	respondWithJSON(w, http.StatusOK, brief)
}

func (h *handlers) requireRepo(w http.ResponseWriter) bool {
	if h.repo == nil {
		h.respondWithError(w, http.StatusServiceUnavailable, "storage not configured", nil)
		return false
	}
	return true
}

func (h *handlers) respondWithRecord(w http.ResponseWriter, record domain.BriefRecord, err error) {
	switch {
	case errors.Is(err, ports.ErrNoSnapshot):
		h.respondWithError(w, http.StatusNotFound, "brief not found", nil)
	case err != nil:
		h.respondWithError(w, http.StatusInternalServerError, "failed to load brief", err)
	default:
		respondWithJSON(w, http.StatusOK, viewOf(record, true))
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *handlers) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		h.logger.Error("http error", "code", code, "message", message, "error", err)
	}
	respondWithJSON(w, code, map[string]string{"error": message})
}
