package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// FinancialSummary is the dashboard headline block.
type FinancialSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalExpenses       float64 `json:"totalExpenses"`
	TotalProfit         float64 `json:"totalProfit"`
	EventsCount         int     `json:"eventsCount"`
	AvgRevenuePerEvent  float64 `json:"avgRevenuePerEvent"`
	AvgExpensesPerEvent float64 `json:"avgExpensesPerEvent"`
	AvgProfitPerEvent   float64 `json:"avgProfitPerEvent"`
	ROI                 float64 `json:"roi"`
}

// MonthlyPerformance is one calendar month of completed-event figures.
type MonthlyPerformance struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// EventPerformance compares completed events sharing one name.
type EventPerformance struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalProfit   float64 `json:"totalProfit"`
	AvgProfit     float64 `json:"avgProfit"`
}

// CategoryBreakdown is one category's share of all expenses.
type CategoryBreakdown struct {
	Category   models.ExpenseCategory `json:"category"`
	Total      float64                `json:"total"`
	Percentage float64                `json:"percentage"`
}

// ReportService computes the dashboard metrics from live expense rows.
//
// There is no revenue table yet, so revenue is estimated as a fixed multiple
// of expenses. The multiple comes from configuration (default 1.5); when a
// real revenue feed lands, this service is the only place to change.
type ReportService struct {
	store             storage.ReportStore
	revenueMultiplier decimal.Decimal
	monthlyWindow     int
}

// NewReportService creates a ReportService with the given revenue estimation
// multiplier and trailing monthly-performance window (in months).
func NewReportService(store storage.ReportStore, revenueMultiplier float64, monthlyWindowMonths int) *ReportService {
	return &ReportService{
		store:             store,
		revenueMultiplier: decimal.NewFromFloat(revenueMultiplier),
		monthlyWindow:     monthlyWindowMonths,
	}
}

// Summary computes the headline totals, per-completed-event averages and ROI.
// Averages and ROI are 0 when their divisor is 0, never NaN.
func (s *ReportService) Summary(ctx context.Context) (*FinancialSummary, error) {
	totalStr, err := s.store.TotalExpenses(ctx)
	if err != nil {
		slog.Error("Financial summary failed", "error", err)
		return nil, err
	}
	expenses, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("parsing expense total %q: %w", totalStr, err)
	}

	count, err := s.store.CompletedEventCount(ctx)
	if err != nil {
		slog.Error("Financial summary failed", "error", err)
		return nil, err
	}

	revenue := expenses.Mul(s.revenueMultiplier)
	profit := revenue.Sub(expenses)

	summary := &FinancialSummary{
		TotalRevenue:  round2(revenue),
		TotalExpenses: round2(expenses),
		TotalProfit:   round2(profit),
		EventsCount:   count,
	}
	if count > 0 {
		n := decimal.NewFromInt(int64(count))
		summary.AvgRevenuePerEvent = round2(revenue.Div(n))
		summary.AvgExpensesPerEvent = round2(expenses.Div(n))
		summary.AvgProfitPerEvent = round2(profit.Div(n))
	}
	if expenses.IsPositive() {
		summary.ROI = round2(profit.Div(expenses).Mul(decimal.NewFromInt(100)))
	}
	return summary, nil
}

// Monthly returns revenue/expense/profit figures for completed events in the
// trailing window, one entry per calendar month, ascending.
func (s *ReportService) Monthly(ctx context.Context) ([]MonthlyPerformance, error) {
	fromDate := time.Now().AddDate(0, -s.monthlyWindow, 0).Format(models.DateLayout)

	totals, err := s.store.ExpensesByMonth(ctx, fromDate)
	if err != nil {
		slog.Error("Monthly performance failed", "error", err)
		return nil, err
	}

	result := make([]MonthlyPerformance, 0, len(totals))
	for _, mt := range totals {
		expenses, err := decimal.NewFromString(mt.Total)
		if err != nil {
			return nil, fmt.Errorf("parsing monthly total %q: %w", mt.Total, err)
		}
		revenue := expenses.Mul(s.revenueMultiplier)
		result = append(result, MonthlyPerformance{
			Month:    mt.Month,
			Revenue:  round2(revenue),
			Expenses: round2(expenses),
			Profit:   round2(revenue.Sub(expenses)),
		})
	}
	return result, nil
}

// ByEvent compares completed events grouped by name, most profitable first.
func (s *ReportService) ByEvent(ctx context.Context) ([]EventPerformance, error) {
	totals, err := s.store.ExpensesByEventName(ctx)
	if err != nil {
		slog.Error("Event performance failed", "error", err)
		return nil, err
	}

	result := make([]EventPerformance, 0, len(totals))
	for _, et := range totals {
		expenses, err := decimal.NewFromString(et.Total)
		if err != nil {
			return nil, fmt.Errorf("parsing event total %q: %w", et.Total, err)
		}
		revenue := expenses.Mul(s.revenueMultiplier)
		profit := revenue.Sub(expenses)

		perf := EventPerformance{
			Name:          et.Name,
			Count:         et.Count,
			TotalRevenue:  round2(revenue),
			TotalExpenses: round2(expenses),
			TotalProfit:   round2(profit),
		}
		if et.Count > 0 {
			perf.AvgProfit = round2(profit.Div(decimal.NewFromInt(int64(et.Count))))
		}
		result = append(result, perf)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalProfit != result[j].TotalProfit {
			return result[i].TotalProfit > result[j].TotalProfit
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Breakdown returns the per-category expense totals and their share of the
// grand total. Every percentage is 0 when there are no expenses at all.
func (s *ReportService) Breakdown(ctx context.Context) ([]CategoryBreakdown, error) {
	totals, err := s.store.ExpensesByCategory(ctx)
	if err != nil {
		slog.Error("Expense breakdown failed", "error", err)
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(totals))
	grand := decimal.Zero
	for i, ct := range totals {
		amount, err := decimal.NewFromString(ct.Total)
		if err != nil {
			return nil, fmt.Errorf("parsing category total %q: %w", ct.Total, err)
		}
		amounts[i] = amount
		grand = grand.Add(amount)
	}

	result := make([]CategoryBreakdown, 0, len(totals))
	for i, ct := range totals {
		cb := CategoryBreakdown{
			Category: ct.Category,
			Total:    round2(amounts[i]),
		}
		if grand.IsPositive() {
			cb.Percentage = round2(amounts[i].Div(grand).Mul(decimal.NewFromInt(100)))
		}
		result = append(result, cb)
	}
	return result, nil
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
