package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := a.expenseSvc.ListByEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (a *API) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := a.expenseSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (a *API) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in models.ExpenseInput
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := a.expenseSvc.Create(r.Context(), chi.URLParam(r, "id"), &in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Event not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (a *API) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var patch models.ExpensePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := a.expenseSvc.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := a.expenseSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Expense deleted successfully")
}
