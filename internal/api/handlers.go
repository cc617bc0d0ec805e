package api

import (
	"encoding/json"
	"net/http"

	"github.com/yegors/awardsearch/internal/search"
	"github.com/yegors/awardsearch/pkg/logger"
)

// Handler serves the read-only snapshot of a completed run.
type Handler struct {
	results *search.Results
	logger  *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(results *search.Results, logger *logger.Logger) *Handler {
	return &Handler{
		results: results,
		logger:  logger.Named("api-handler"),
	}
}

// Summary is the run outcome in counts plus the bookkeeping lists.
type Summary struct {
	TotalFlights    int                  `json:"total_flights"`
	FilteredFlights int                  `json:"filtered_flights"`
	Errors          []search.Combination `json:"errors"`
	Missing         []search.Combination `json:"missing"`
}

// GetAllFlights returns every flight found across all combinations.
func (h *Handler) GetAllFlights(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.results.All)
}

// GetFilteredFlights returns the flights that passed the criteria.
func (h *Handler) GetFilteredFlights(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.results.Filtered)
}

// GetSummary returns counts and the errored/empty combinations.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, Summary{
		TotalFlights:    len(h.results.All),
		FilteredFlights: len(h.results.Filtered),
		Errors:          h.results.Errors,
		Missing:         h.results.Missing,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}
