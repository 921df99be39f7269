package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/internal/modules/reports"
)

// AnalysisHandlers exposes the analysis engines over HTTP.
type AnalysisHandlers struct {
	service *reports.Service
	repo    *reports.Repository
	log     zerolog.Logger
}

// NewAnalysisHandlers creates new analysis handlers
func NewAnalysisHandlers(service *reports.Service, repo *reports.Repository, log zerolog.Logger) *AnalysisHandlers {
	return &AnalysisHandlers{
		service: service,
		repo:    repo,
		log:     log.With().Str("handlers", "analysis").Logger(),
	}
}

// HandleAnalyze runs all three engines and returns the assembled report
// POST /api/analysis
func (h *AnalysisHandlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.decodeIdea(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Analyze(idea))
}

// HandleMetrics runs only the metrics calculator
// POST /api/analysis/metrics
func (h *AnalysisHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.decodeIdea(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Metrics(idea))
}

// HandleRisk runs only the risk assessor
// POST /api/analysis/risk
func (h *AnalysisHandlers) HandleRisk(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.decodeIdea(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Risk(idea))
}

// HandleOutcomes runs only the outcome modeler
// POST /api/analysis/outcomes
func (h *AnalysisHandlers) HandleOutcomes(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.decodeIdea(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Outcomes(idea))
}

// HandleGetReport loads a persisted report
// GET /api/analysis/{id}
func (h *AnalysisHandlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusNotFound, "report persistence is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	report, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("report", id).Msg("Failed to load report")
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("report %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleListRecent lists the most recent reports
// GET /api/analysis/recent?limit=20
func (h *AnalysisHandlers) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusNotFound, "report persistence is disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	list, err := h.repo.ListRecent(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list reports")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if list == nil {
		list = []reports.AnalysisReport{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AnalysisHandlers) decodeIdea(w http.ResponseWriter, r *http.Request) (domain.InvestmentIdea, bool) {
	var idea domain.InvestmentIdea
	if err := json.NewDecoder(r.Body).Decode(&idea); err != nil {
		h.log.Warn().Err(err).Msg("Invalid request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return domain.InvestmentIdea{}, false
	}
	return idea, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
