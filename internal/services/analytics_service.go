package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// AnalyticsService computes the period-bounded aggregates behind
// /api/summary and /api/analytics. The individual SUM/GROUP BY queries are
// independent, so they fan out concurrently.
type AnalyticsService struct {
	repo *storage.SQLiteRepository
	now  func() time.Time
}

func NewAnalyticsService(repo *storage.SQLiteRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// WithClock overrides the time source, used by tests to pin "today".
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Summary aggregates totals and per-category sums over the resolved range.
func (s *AnalyticsService) Summary(ctx context.Context, profileID int64, period core.Period, start, end string) (core.Summary, error) {
	dr := core.ResolvePeriod(period, s.now(), start, end)

	var summary core.Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.repo.SumExpenses(gctx, profileID, dr)
		summary.TotalExpenses = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SumIncome(gctx, profileID, dr)
		summary.TotalIncome = total
		return err
	})
	g.Go(func() error {
		byCat, err := s.repo.SumExpensesByCategory(gctx, profileID, dr)
		summary.ByCategory = byCat
		return err
	})
	g.Go(func() error {
		budget, err := s.repo.MonthlyBudget(gctx, profileID)
		summary.TotalBudget = budget
		return err
	})

	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}
	return summary, nil
}

// Analytics computes the extended aggregate: totals, averages, groupings,
// the dense daily trend and the monthly income-vs-expense series.
func (s *AnalyticsService) Analytics(ctx context.Context, profileID int64, period core.Period, start, end string) (core.Analytics, error) {
	dr := core.ResolvePeriod(period, s.now(), start, end)

	var (
		a        core.Analytics
		byDate   map[string]float64
		expMonth map[string]float64
		incMonth map[string]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.SumExpenses(gctx, profileID, dr)
		a.TotalExpenses = total
		return err
	})
	g.Go(func() error {
		count, err := s.repo.CountExpenses(gctx, profileID, dr)
		a.TransactionCount = count
		return err
	})
	g.Go(func() error {
		byCat, err := s.repo.SumExpensesByCategory(gctx, profileID, dr)
		a.ByCategory = byCat
		return err
	})
	g.Go(func() error {
		byPay, err := s.repo.SumExpensesByPayment(gctx, profileID, dr)
		a.ByPayment = byPay
		return err
	})
	g.Go(func() error {
		var err error
		byDate, err = s.repo.SumExpensesByDate(gctx, profileID, dr)
		return err
	})
	g.Go(func() error {
		var err error
		expMonth, err = s.repo.SumExpensesByMonth(gctx, profileID, dr)
		return err
	})
	g.Go(func() error {
		var err error
		incMonth, err = s.repo.SumIncomeByMonth(gctx, profileID, dr)
		return err
	})

	if err := g.Wait(); err != nil {
		return core.Analytics{}, err
	}

	// Lifetime has no meaningful lower bound; both the day count and the
	// trend span start at the first recorded expense instead of the epoch.
	trendRange := dr
	if dr.IsLifetime() {
		first, err := s.repo.FirstExpenseDate(ctx, profileID)
		if err != nil {
			return core.Analytics{}, err
		}
		if first == "" {
			trendRange = core.DateRange{Start: dr.End, End: dr.End}
		} else {
			trendRange = core.DateRange{Start: first, End: dr.End}
		}
	}

	a.AvgDaily = core.AvgDaily(a.TotalExpenses, trendRange.Days())
	if name, ok := core.HighestCategory(a.ByCategory); ok {
		a.HighestCategory = name
	}
	a.TrendLabels, a.TrendData = core.FillDailyTrend(trendRange, byDate)
	a.IncomeExpenseLabels, a.IncomeData, a.ExpenseData = core.MonthlySeries(expMonth, incMonth)

	return a, nil
}
