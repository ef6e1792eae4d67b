package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// ExpenseService implements CRUD on individual expense rows.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ListByEvent returns all expenses for an event, newest first.
func (s *ExpenseService) ListByEvent(ctx context.Context, eventID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByEvent(ctx, eventID)
	if err != nil {
		slog.Error("ListExpensesByEvent failed", "event_id", eventID, "error", err)
		return nil, err
	}
	return expenses, nil
}

// Get returns one expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// Create validates the input and inserts a new expense for the event.
// The parent event must exist; no row is written when it does not.
func (s *ExpenseService) Create(ctx context.Context, eventID string, in *models.ExpenseInput) (*models.Expense, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	if verr := in.Validate(); verr != nil {
		slog.Warn("Expense validation failed", "event_id", eventID, "error", verr)
		return nil, verr
	}

	expense := in.ToExpense(eventID)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "event_id", eventID, "category", expense.Category)
	return expense, nil
}

// Update applies a partial patch to an existing expense.
func (s *ExpenseService) Update(ctx context.Context, id string, patch *models.ExpensePatch) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if verr := patch.Apply(expense); verr != nil {
		slog.Warn("Expense patch validation failed", "expense_id", id, "error", verr)
		return nil, verr
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", id, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", id)
	return expense, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		if err != storage.ErrNotFound {
			slog.Error("DeleteExpense failed", "expense_id", id, "error", err)
		}
		return err
	}
	slog.Info("Expense deleted", "expense_id", id)
	return nil
}
