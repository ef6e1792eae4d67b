package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return m
}

func weeklyEvent(name string) *models.Event {
	return &models.Event{
		Name:         name,
		EventType:    models.EventWeekly,
		DayOfWeek:    "Friday",
		VenueName:    "Club Paradiso",
		DealType:     models.DealRevenueShare,
		Commissions:  "20% over 5k",
		PaymentTerms: models.PayOneWeek,
		Status:       models.StatusUpcoming,
	}
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and timestamps", func(t *testing.T) {
		user := &models.User{Name: "Maria", Email: "maria@example.com", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected ID to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
		if user.Role != models.RoleUser {
			t.Errorf("expected user role, got %q", user.Role)
		}
	})

	t.Run("GetUserByEmail round-trips", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "maria@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user.Name != "Maria" {
			t.Errorf("expected Maria, got %q", user.Name)
		}
		if user.LastLogin != 0 {
			t.Errorf("expected zero last login, got %d", user.LastLogin)
		}
	})

	t.Run("duplicate email is rejected by the unique index", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Name: "Other", Email: "maria@example.com", PasswordHash: "hash"})
		if err == nil {
			t.Fatal("expected unique constraint error")
		}
	})

	t.Run("TouchLastLogin updates the row", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "maria@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if err := store.TouchLastLogin(ctx, user.ID, 1756400000); err != nil {
			t.Fatalf("TouchLastLogin failed: %v", err)
		}
		user, err = store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if user.LastLogin != 1756400000 {
			t.Errorf("expected last login to be recorded, got %d", user.LastLogin)
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.UpdatePassword(ctx, "nope", "hash"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEventStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateEventWithExpenses writes both and attaches expenses on read", func(t *testing.T) {
		event := weeklyEvent("Friday Night")
		expenses := []*models.Expense{
			{Category: models.CategoryPromoter, Amount: mustMoney(t, "500")},
			{Category: models.CategoryStaff, Amount: mustMoney(t, "120.50")},
		}

		if err := store.CreateEventWithExpenses(ctx, event, expenses); err != nil {
			t.Fatalf("CreateEventWithExpenses failed: %v", err)
		}
		if event.ID == "" {
			t.Fatal("expected event ID to be assigned")
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if len(got.Expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(got.Expenses))
		}
		for _, exp := range got.Expenses {
			if exp.EventID != event.ID {
				t.Errorf("expense %s not linked to event", exp.ID)
			}
		}
	})

	t.Run("a failing expense rolls back the whole creation", func(t *testing.T) {
		event := weeklyEvent("Doomed Night")
		expenses := []*models.Expense{
			{Category: models.CategoryPromoter, Amount: mustMoney(t, "500")},
			{Category: models.CategoryStaff, Amount: mustMoney(t, "0")}, // violates amount > 0
		}

		if err := store.CreateEventWithExpenses(ctx, event, expenses); err == nil {
			t.Fatal("expected creation to fail")
		}
		if _, err := store.GetEvent(ctx, event.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected event to be rolled back, got %v", err)
		}
	})

	t.Run("ListEvents returns newest first without expenses", func(t *testing.T) {
		second := weeklyEvent("Saturday Night")
		if err := store.CreateEventWithExpenses(ctx, second, nil); err != nil {
			t.Fatalf("CreateEventWithExpenses failed: %v", err)
		}

		events, err := store.ListEvents(ctx)
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		for _, ev := range events {
			if len(ev.Expenses) != 0 {
				t.Errorf("list should not attach expenses, got %d for %s", len(ev.Expenses), ev.Name)
			}
		}
	})

	t.Run("UpdateEvent persists changes", func(t *testing.T) {
		events, err := store.ListEvents(ctx)
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		event := events[0]
		event.Status = models.StatusCompleted

		if err := store.UpdateEvent(ctx, event); err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got.Status != models.StatusCompleted {
			t.Errorf("expected completed, got %q", got.Status)
		}
	})

	t.Run("DeleteEvent removes the event and its expenses", func(t *testing.T) {
		event := weeklyEvent("Short Lived")
		expenses := []*models.Expense{
			{Category: models.CategoryVenue, Amount: mustMoney(t, "300")},
			{Category: models.CategoryStaff, Amount: mustMoney(t, "100")},
			{Category: models.CategoryOther, Amount: mustMoney(t, "50")},
		}
		if err := store.CreateEventWithExpenses(ctx, event, expenses); err != nil {
			t.Fatalf("CreateEventWithExpenses failed: %v", err)
		}
		created, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}

		if err := store.DeleteEvent(ctx, event.ID); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		if _, err := store.GetEvent(ctx, event.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected event gone, got %v", err)
		}
		for _, exp := range created.Expenses {
			if _, err := store.GetExpense(ctx, exp.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected expense %s gone, got %v", exp.ID, err)
			}
		}
	})

	t.Run("missing event returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetEvent(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteEvent(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestExpenseStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := weeklyEvent("Friday Night")
	if err := store.CreateEventWithExpenses(ctx, event, nil); err != nil {
		t.Fatalf("CreateEventWithExpenses failed: %v", err)
	}

	t.Run("CreateExpense assigns ID and defaults", func(t *testing.T) {
		exp := &models.Expense{
			EventID:  event.ID,
			Category: models.CategoryAdSpend,
			Amount:   mustMoney(t, "250"),
		}
		if err := store.CreateExpense(ctx, exp); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if exp.ID == "" {
			t.Error("expected ID to be assigned")
		}
		if exp.PaymentDate == "" {
			t.Error("expected payment date default")
		}
		if exp.PaymentMethod != models.MethodCash {
			t.Errorf("expected Cash default, got %q", exp.PaymentMethod)
		}
	})

	t.Run("amount round-trips as a two-decimal string", func(t *testing.T) {
		exp := &models.Expense{
			EventID:  event.ID,
			Category: models.CategoryPromoter,
			Amount:   mustMoney(t, "500"),
		}
		if err := store.CreateExpense(ctx, exp); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, exp.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount.String() != "500.00" {
			t.Errorf("expected 500.00, got %s", got.Amount.String())
		}
	})

	t.Run("UpdateExpense persists changes", func(t *testing.T) {
		expenses, err := store.ListExpensesByEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("ListExpensesByEvent failed: %v", err)
		}
		exp := expenses[0]
		exp.Amount = mustMoney(t, "750.25")
		exp.PaymentMethod = models.MethodCard

		if err := store.UpdateExpense(ctx, exp); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		got, err := store.GetExpense(ctx, exp.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount.String() != "750.25" {
			t.Errorf("expected 750.25, got %s", got.Amount.String())
		}
		if got.PaymentMethod != models.MethodCard {
			t.Errorf("expected Card, got %q", got.PaymentMethod)
		}
	})

	t.Run("DeleteExpense removes the row", func(t *testing.T) {
		expenses, err := store.ListExpensesByEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("ListExpensesByEvent failed: %v", err)
		}
		exp := expenses[0]

		if err := store.DeleteExpense(ctx, exp.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, exp.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing expense returns ErrNotFound", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestHealthChecks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	checks := store.TableChecks(ctx)
	for _, table := range []string{"users", "events", "expenses"} {
		if !checks[table] {
			t.Errorf("expected table %s to be reachable", table)
		}
	}
}
