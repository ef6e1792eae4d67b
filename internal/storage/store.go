// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rumbahq/rumba/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
// Handlers translate it to a 404 response.
var ErrNotFound = errors.New("not found")

// UserStore defines user persistence operations.
type UserStore interface {
	// CreateUser persists a new user. The ID and timestamps are assigned
	// by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUser persists changes to name and email.
	UpdateUser(ctx context.Context, user *models.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, id string, when int64) error
}

// EventStore defines event persistence operations.
type EventStore interface {
	// CreateEventWithExpenses persists an event and its initial expenses in
	// a single transaction. Either everything is written or nothing is.
	// IDs and timestamps are assigned by the store.
	CreateEventWithExpenses(ctx context.Context, event *models.Event, expenses []*models.Expense) error

	// GetEvent retrieves an event with its expenses attached.
	// Returns ErrNotFound if no such event exists.
	GetEvent(ctx context.Context, id string) (*models.Event, error)

	// ListEvents retrieves all events, newest first, without expenses.
	ListEvents(ctx context.Context) ([]*models.Event, error)

	// UpdateEvent persists changes to an existing event.
	// Returns ErrNotFound if no such event exists.
	UpdateEvent(ctx context.Context, event *models.Event) error

	// DeleteEvent removes an event and all of its expenses in a single
	// transaction. Returns ErrNotFound if no such event exists.
	DeleteEvent(ctx context.Context, id string) error
}

// ExpenseStore defines expense persistence operations.
type ExpenseStore interface {
	// CreateExpense persists a new expense row. The ID and timestamps are
	// assigned by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	// Returns ErrNotFound if no such expense exists.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByEvent retrieves all expenses for an event, newest first.
	ListExpensesByEvent(ctx context.Context, eventID string) ([]*models.Expense, error)

	// UpdateExpense persists changes to an existing expense.
	// Returns ErrNotFound if no such expense exists.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by ID.
	// Returns ErrNotFound if no such expense exists.
	DeleteExpense(ctx context.Context, id string) error
}

// CategoryTotal is the summed expense amount for one category.
type CategoryTotal struct {
	Category models.ExpenseCategory
	Total    string
}

// MonthlyExpenseTotal is the summed expense amount for completed events in
// one calendar month (YYYY-MM).
type MonthlyExpenseTotal struct {
	Month string
	Total string
}

// EventExpenseTotal is the summed expense amount across all completed
// occurrences sharing one event name.
type EventExpenseTotal struct {
	Name  string
	Count int
	Total string
}

// ReportStore defines the read-only aggregation queries that back the
// dashboard reports. Totals are returned as decimal strings so callers can
// do exact arithmetic on them.
type ReportStore interface {
	// TotalExpenses sums every expense row.
	TotalExpenses(ctx context.Context) (string, error)

	// CompletedEventCount counts events with completed status.
	CompletedEventCount(ctx context.Context) (int, error)

	// ExpensesByCategory sums expenses per category, largest first.
	ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error)

	// ExpensesByMonth sums expenses of completed, dated events per calendar
	// month from the given date (YYYY-MM-DD) onward, ascending by month.
	ExpensesByMonth(ctx context.Context, fromDate string) ([]MonthlyExpenseTotal, error)

	// ExpensesByEventName sums expenses of completed events grouped by
	// event name, together with the number of distinct occurrences.
	ExpensesByEventName(ctx context.Context) ([]EventExpenseTotal, error)
}

// Store bundles every persistence concern behind one handle.
type Store interface {
	UserStore
	EventStore
	ExpenseStore
	ReportStore

	// Ping verifies the underlying database connection.
	Ping(ctx context.Context) error

	// TableChecks reports per-table reachability for the health endpoint.
	TableChecks(ctx context.Context) map[string]bool

	// Close releases any resources held by the store.
	Close() error
}
