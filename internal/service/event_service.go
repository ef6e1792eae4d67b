package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// EventService implements event reads and the transactional write paths.
type EventService struct {
	store storage.Store
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		slog.Error("ListEvents failed", "error", err)
		return nil, err
	}
	return events, nil
}

// Get returns one event with its expenses attached.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create validates the input, then writes the event and its initial expense
// items in one transaction. On success the event is re-fetched so the
// response carries the stored rows, IDs and timestamps included.
func (s *EventService) Create(ctx context.Context, userID string, in *models.EventInput) (*models.Event, error) {
	if verr := in.Validate(); verr != nil {
		slog.Warn("Event validation failed", "user_id", userID, "error", verr)
		return nil, verr
	}

	event := in.ToEvent(userID)
	expenses := make([]*models.Expense, len(in.Expenses))
	for i := range in.Expenses {
		expenses[i] = in.Expenses[i].ToExpense("") // event ID assigned inside the transaction
	}

	if err := s.store.CreateEventWithExpenses(ctx, event, expenses); err != nil {
		slog.Error("CreateEventWithExpenses failed", "user_id", userID, "name", event.Name, "error", err)
		return nil, fmt.Errorf("creating event: %w", err)
	}

	created, err := s.store.GetEvent(ctx, event.ID)
	if err != nil {
		slog.Error("Fetch after create failed", "event_id", event.ID, "error", err)
		return nil, fmt.Errorf("fetching created event: %w", err)
	}

	slog.Info("Event created", "event_id", created.ID, "user_id", userID, "expenses", len(created.Expenses))
	return created, nil
}

// Update applies a partial patch to an existing event.
func (s *EventService) Update(ctx context.Context, id string, patch *models.EventPatch) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if verr := patch.Apply(event); verr != nil {
		slog.Warn("Event patch validation failed", "event_id", id, "error", verr)
		return nil, verr
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		slog.Error("UpdateEvent failed", "event_id", id, "error", err)
		return nil, err
	}

	slog.Info("Event updated", "event_id", id)
	return event, nil
}

// Delete removes an event together with all of its expenses.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		if err != storage.ErrNotFound {
			slog.Error("DeleteEvent failed", "event_id", id, "error", err)
		}
		return err
	}
	slog.Info("Event deleted", "event_id", id)
	return nil
}
