package api

import (
	"net/http"
	"time"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "Rumba Event Metrics API",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := a.store.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"tables": a.store.TableChecks(ctx),
	})
}
