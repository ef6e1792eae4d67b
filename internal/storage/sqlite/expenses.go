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

const expenseColumns = `id, event_id, category, amount, description,
	payment_date, payment_method, receipt, created_at, updated_at`

// execer covers *sql.DB and *sql.Tx so the same insert serves both the
// standalone create path and the event-creation transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertExpense(ctx context.Context, ex execer, exp *models.Expense) error {
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if exp.CreatedAt == 0 {
		exp.CreatedAt = now
	}
	exp.UpdatedAt = now
	if exp.PaymentDate == "" {
		exp.PaymentDate = time.Now().Format(models.DateLayout)
	}
	if exp.PaymentMethod == "" {
		exp.PaymentMethod = models.MethodCash
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		exp.ID, exp.EventID, exp.Category, exp.Amount, exp.Description,
		exp.PaymentDate, exp.PaymentMethod, exp.Receipt, exp.CreatedAt, exp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// CreateExpense persists a new expense row.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return insertExpense(ctx, s.db, expense)
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	exp, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return exp, nil
}

// ListExpensesByEvent retrieves all expenses for an event, newest first.
func (s *SQLiteStore) ListExpensesByEvent(ctx context.Context, eventID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE event_id = ? ORDER BY created_at DESC, id",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense persists changes to an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category = ?, amount = ?, description = ?,
			payment_date = ?, payment_method = ?, receipt = ?, updated_at = ?
		WHERE id = ?`,
		expense.Category, expense.Amount, expense.Description,
		expense.PaymentDate, expense.PaymentMethod, expense.Receipt,
		expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return checkAffected(res)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return checkAffected(res)
}

func scanExpense(sc scanner) (*models.Expense, error) {
	exp := &models.Expense{}
	err := sc.Scan(&exp.ID, &exp.EventID, &exp.Category, &exp.Amount,
		&exp.Description, &exp.PaymentDate, &exp.PaymentMethod, &exp.Receipt,
		&exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return exp, nil
}
