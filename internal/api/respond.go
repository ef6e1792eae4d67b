package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// errorResponse is the uniform error body: a human-readable message plus,
// for validation failures, the offending fields.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// decodeJSON reads the request body into v, rejecting unparseable payloads.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondServiceError maps service errors onto the HTTP error taxonomy:
// validation 400, conflicts 400, bad credentials 401, missing rows 404,
// everything else a 500 whose detail is only exposed in development.
func (a *API) respondServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Validation failed",
			Errors:  verr.Errors,
		})
	case errors.Is(err, auth.ErrEmailExists):
		respondMessage(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, auth.ErrWeakPassword):
		respondMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, storage.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	default:
		a.respondInternal(w, err)
	}
}

func (a *API) respondInternal(w http.ResponseWriter, err error) {
	slog.Error("Unhandled error", "error", err)
	body := errorResponse{Message: "Internal server error"}
	if a.dev {
		body.Error = err.Error()
	}
	respondJSON(w, http.StatusInternalServerError, body)
}
