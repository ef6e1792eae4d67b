package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rumbahq/rumba/internal/models"
)

func datedEvent(name, date string, status models.EventStatus) *models.Event {
	return &models.Event{
		Name:         name,
		EventType:    models.EventOneTime,
		EventDate:    date,
		VenueName:    "Club Paradiso",
		DealType:     models.DealRevenueShare,
		Commissions:  "20% over 5k",
		PaymentTerms: models.PayOneWeek,
		Status:       status,
	}
}

func requireTotal(t *testing.T, want, got string) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(got)),
		"expected total %s, got %s", want, got)
}

func seedReportData(t *testing.T, store *SQLiteStore) {
	t.Helper()
	ctx := context.Background()

	seed := []struct {
		event    *models.Event
		expenses []*models.Expense
	}{
		{
			datedEvent("Gala", "2026-05-15", models.StatusCompleted),
			[]*models.Expense{
				{Category: models.CategoryPromoter, Amount: mustMoney(t, "600")},
				{Category: models.CategoryStaff, Amount: mustMoney(t, "400")},
			},
		},
		{
			datedEvent("Gala", "2026-06-10", models.StatusCompleted),
			[]*models.Expense{
				{Category: models.CategoryPromoter, Amount: mustMoney(t, "500")},
			},
		},
		{
			datedEvent("Launch", "2026-06-20", models.StatusCompleted),
			[]*models.Expense{
				{Category: models.CategoryVenue, Amount: mustMoney(t, "250")},
			},
		},
		{
			datedEvent("Future", "2026-09-01", models.StatusUpcoming),
			[]*models.Expense{
				{Category: models.CategoryAdSpend, Amount: mustMoney(t, "100")},
			},
		},
	}
	for _, s := range seed {
		require.NoError(t, store.CreateEventWithExpenses(ctx, s.event, s.expenses))
	}
}

func TestReportQueries(t *testing.T) {
	store := newTestStore(t)
	seedReportData(t, store)
	ctx := context.Background()

	t.Run("TotalExpenses sums every row regardless of status", func(t *testing.T) {
		total, err := store.TotalExpenses(ctx)
		require.NoError(t, err)
		requireTotal(t, "1850", total)
	})

	t.Run("CompletedEventCount ignores upcoming events", func(t *testing.T) {
		count, err := store.CompletedEventCount(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, count)
	})

	t.Run("ExpensesByCategory orders largest first", func(t *testing.T) {
		totals, err := store.ExpensesByCategory(ctx)
		require.NoError(t, err)
		require.Len(t, totals, 4)

		require.Equal(t, models.CategoryPromoter, totals[0].Category)
		requireTotal(t, "1100", totals[0].Total)
		requireTotal(t, "400", totals[1].Total)
	})

	t.Run("ExpensesByMonth groups completed dated events ascending", func(t *testing.T) {
		totals, err := store.ExpensesByMonth(ctx, "2026-01-01")
		require.NoError(t, err)
		require.Len(t, totals, 2)

		require.Equal(t, "2026-05", totals[0].Month)
		requireTotal(t, "1000", totals[0].Total)
		require.Equal(t, "2026-06", totals[1].Month)
		requireTotal(t, "750", totals[1].Total)
	})

	t.Run("ExpensesByMonth honours the window start", func(t *testing.T) {
		totals, err := store.ExpensesByMonth(ctx, "2026-06-01")
		require.NoError(t, err)
		require.Len(t, totals, 1)
		require.Equal(t, "2026-06", totals[0].Month)
	})

	t.Run("ExpensesByEventName counts distinct occurrences", func(t *testing.T) {
		totals, err := store.ExpensesByEventName(ctx)
		require.NoError(t, err)
		require.Len(t, totals, 2)

		byName := make(map[string]int)
		for i, et := range totals {
			byName[et.Name] = i
		}
		gala := totals[byName["Gala"]]
		require.Equal(t, 2, gala.Count)
		requireTotal(t, "1500", gala.Total)

		launch := totals[byName["Launch"]]
		require.Equal(t, 1, launch.Count)
		requireTotal(t, "250", launch.Total)
	})

	t.Run("empty database yields zero totals", func(t *testing.T) {
		empty := newTestStore(t)

		total, err := empty.TotalExpenses(ctx)
		require.NoError(t, err)
		requireTotal(t, "0", total)

		months, err := empty.ExpensesByMonth(ctx, "2026-01-01")
		require.NoError(t, err)
		require.Empty(t, months)
	})
}
