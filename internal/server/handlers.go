package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
	searchuc "github.com/erpworks/tablescout/internal/usecase/search"
)

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	var req searchuc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, searchuc.Response{
			Success: false,
			Error:   "Search query is required",
			Results: []domain.MergedRecord{},
			Context: "error",
		})
		return
	}

	resp, err := s.search.Search(r.Context(), req)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrEmptyQuery):
		s.respondJSON(w, http.StatusBadRequest, resp)
	default:
		s.logger.Error("search failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, searchuc.Response{
			Success:          false,
			Error:            "Internal server error",
			Results:          []domain.MergedRecord{},
			ProcessingTimeMs: resp.ProcessingTimeMs,
			Context:          "error",
		})
	}
}

// handleSearchOptions handles the CORS preflight for /search.
func (s *Server) handleSearchOptions(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusOK)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
