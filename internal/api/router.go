// Package api provides the HTTP status surface of the importer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/catalogtools/eav-import/internal/observability"
	"github.com/catalogtools/eav-import/internal/registry"
)

// NewRouter creates the status API router.
func NewRouter(logger *observability.Logger, reg registry.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"eav-import"}`))
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "id")

		status, err := reg.Get(r.Context(), runID)
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			logger.Error().Err(err).Str("run_id", runID).Msg("Failed to read run status")
			writeError(w, http.StatusInternalServerError, "registry unavailable")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.Error().Err(err).Msg("Failed to encode run status")
		}
	})

	return r
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
