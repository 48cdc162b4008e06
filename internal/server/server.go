// Package server wires the search API onto a chi router.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthuc "github.com/erpworks/tablescout/internal/usecase/health"
	searchuc "github.com/erpworks/tablescout/internal/usecase/search"
)

// Server holds the HTTP handlers and their use case dependencies.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// New creates an HTTP API server.
func New(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.handleSearch)
	r.Options("/search", s.handleSearchOptions)
	r.Get("/health", s.handleHealth)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
