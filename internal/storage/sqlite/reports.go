package sqlite

import (
	"context"
	"fmt"

	"github.com/rumbahq/rumba/internal/storage"
)

// Report queries aggregate directly over the live tables on every call.
// Totals are cast to TEXT in SQL so they come back as decimal strings and
// never pass through float scanning.

// TotalExpenses sums every expense row.
func (s *SQLiteStore) TotalExpenses(ctx context.Context) (string, error) {
	var total string
	err := s.db.QueryRowContext(ctx,
		"SELECT CAST(COALESCE(SUM(amount), 0) AS TEXT) FROM expenses",
	).Scan(&total)
	if err != nil {
		return "", fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// CompletedEventCount counts events with completed status.
func (s *SQLiteStore) CompletedEventCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE status = 'completed'",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed events: %w", err)
	}
	return count, nil
}

// ExpensesByCategory sums expenses per category, largest first.
func (s *SQLiteStore) ExpensesByCategory(ctx context.Context) ([]storage.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, CAST(SUM(amount) AS TEXT) AS total
		FROM expenses
		GROUP BY category
		ORDER BY SUM(amount) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by category: %w", err)
	}
	defer rows.Close()

	totals := []storage.CategoryTotal{}
	for rows.Next() {
		var ct storage.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}
	return totals, nil
}

// ExpensesByMonth sums expenses of completed, dated events per calendar month
// from the given date (YYYY-MM-DD) onward, ascending by month. Weekly events
// carry no calendar date and are excluded, as they always have been.
func (s *SQLiteStore) ExpensesByMonth(ctx context.Context, fromDate string) ([]storage.MonthlyExpenseTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(e.event_date, 1, 7) AS month,
			CAST(COALESCE(SUM(ex.amount), 0) AS TEXT) AS total
		FROM events e
		LEFT JOIN expenses ex ON ex.event_id = e.id
		WHERE e.status = 'completed'
			AND e.event_date != ''
			AND e.event_date >= ?
		GROUP BY month
		ORDER BY month ASC`, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by month: %w", err)
	}
	defer rows.Close()

	totals := []storage.MonthlyExpenseTotal{}
	for rows.Next() {
		var mt storage.MonthlyExpenseTotal
		if err := rows.Scan(&mt.Month, &mt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly totals: %w", err)
	}
	return totals, nil
}

// ExpensesByEventName sums expenses of completed events grouped by event
// name, with the number of distinct occurrences of that name.
func (s *SQLiteStore) ExpensesByEventName(ctx context.Context) ([]storage.EventExpenseTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.name, COUNT(DISTINCT e.id) AS occurrences,
			CAST(COALESCE(SUM(ex.amount), 0) AS TEXT) AS total
		FROM events e
		LEFT JOIN expenses ex ON ex.event_id = e.id
		WHERE e.status = 'completed'
		GROUP BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by event name: %w", err)
	}
	defer rows.Close()

	totals := []storage.EventExpenseTotal{}
	for rows.Next() {
		var et storage.EventExpenseTotal
		if err := rows.Scan(&et.Name, &et.Count, &et.Total); err != nil {
			return nil, fmt.Errorf("failed to scan event total: %w", err)
		}
		totals = append(totals, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event totals: %w", err)
	}
	return totals, nil
}
