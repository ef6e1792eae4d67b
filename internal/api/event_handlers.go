package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rumbahq/rumba/internal/middleware"
	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

func (a *API) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.eventSvc.List(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (a *API) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := a.eventSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (a *API) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := a.eventSvc.Create(r.Context(), middleware.GetUserID(r.Context()), &in)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (a *API) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch models.EventPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := a.eventSvc.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (a *API) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := a.eventSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Event deleted successfully")
}
