package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

const eventColumns = `id, user_id, name, event_type, day_of_week, event_date,
	venue_name, deal_type, commissions, is_progressive_commission,
	payment_terms, entrance_share, status, created_at, updated_at`

// CreateEventWithExpenses persists an event and its initial expenses in a
// single transaction. Any failure rolls back everything, so a half-created
// event can never be observed.
func (s *SQLiteStore) CreateEventWithExpenses(ctx context.Context, event *models.Event, expenses []*models.Expense) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if event.CreatedAt == 0 {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if event.Status == "" {
		event.Status = models.StatusUpcoming
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Insert event
	_, err = tx.ExecContext(ctx,
		"INSERT INTO events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		event.ID, nullable(event.UserID), event.Name, event.EventType,
		event.DayOfWeek, event.EventDate, event.VenueName, event.DealType,
		event.Commissions, event.IsProgressiveCommission, event.PaymentTerms,
		event.EntranceShare, event.Status, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	// Insert initial expenses linked to the new event
	for _, exp := range expenses {
		exp.EventID = event.ID
		if err := insertExpense(ctx, tx, exp); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID with its expenses attached.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	expenses, err := s.ListExpensesByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, exp := range expenses {
		event.Expenses = append(event.Expenses, *exp)
	}

	return event, nil
}

// ListEvents retrieves all events, newest first, without expenses.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// UpdateEvent persists changes to an existing event.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET name = ?, event_type = ?, day_of_week = ?,
			event_date = ?, venue_name = ?, deal_type = ?, commissions = ?,
			is_progressive_commission = ?, payment_terms = ?,
			entrance_share = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		event.Name, event.EventType, event.DayOfWeek, event.EventDate,
		event.VenueName, event.DealType, event.Commissions,
		event.IsProgressiveCommission, event.PaymentTerms,
		event.EntranceShare, event.Status, event.UpdatedAt, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkAffected(res)
}

// DeleteEvent removes an event and all of its expenses in one transaction.
// Both deletes succeed together or neither does.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE event_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete event expenses: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*models.Event, error) {
	event := &models.Event{}
	var userID sql.NullString
	err := sc.Scan(&event.ID, &userID, &event.Name, &event.EventType,
		&event.DayOfWeek, &event.EventDate, &event.VenueName, &event.DealType,
		&event.Commissions, &event.IsProgressiveCommission, &event.PaymentTerms,
		&event.EntranceShare, &event.Status, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	event.UserID = userID.String
	return event, nil
}

// nullable maps an empty string to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
