package core

import (
	"sort"
	"time"
)

// Summary is the period-bounded aggregate returned by /api/summary.
type Summary struct {
	TotalExpenses float64            `json:"total_expenses"`
	TotalIncome   float64            `json:"total_income"`
	TotalBudget   float64            `json:"total_budget"`
	ByCategory    map[string]float64 `json:"by_category"`
}

// Analytics is the extended aggregate returned by /api/analytics.
type Analytics struct {
	TotalExpenses       float64            `json:"total_expenses"`
	AvgDaily            float64            `json:"avg_daily"`
	TransactionCount    int64              `json:"transaction_count"`
	HighestCategory     string             `json:"highest_category,omitempty"`
	ByCategory          map[string]float64 `json:"by_category"`
	ByPayment           map[string]float64 `json:"by_payment"`
	TrendLabels         []string           `json:"trend_labels"`
	TrendData           []float64          `json:"trend_data"`
	IncomeExpenseLabels []string           `json:"income_expense_labels"`
	IncomeData          []float64          `json:"income_data"`
	ExpenseData         []float64          `json:"expense_data"`
}

// FillDailyTrend expands sparse per-date sums into a dense series with one
// entry per calendar day in the range, zero-filled for days without expenses.
// The fill is independent of storage iteration order.
func FillDailyTrend(r DateRange, sums map[string]float64) (labels []string, values []float64) {
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return nil, nil
	}
	end, err := time.Parse(DateLayout, r.End)
	if err != nil {
		return nil, nil
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		labels = append(labels, key)
		values = append(values, sums[key])
	}
	return labels, values
}

// MonthlySeries buckets income and expense sums by YYYY-MM over the union of
// months present in either map, sorted chronologically. Months missing from
// one side contribute zero to that side.
func MonthlySeries(expenseByMonth, incomeByMonth map[string]float64) (labels []string, incomeData, expenseData []float64) {
	seen := make(map[string]struct{}, len(expenseByMonth)+len(incomeByMonth))
	for m := range expenseByMonth {
		seen[m] = struct{}{}
	}
	for m := range incomeByMonth {
		seen[m] = struct{}{}
	}
	labels = make([]string, 0, len(seen))
	for m := range seen {
		labels = append(labels, m)
	}
	sort.Strings(labels)

	incomeData = make([]float64, len(labels))
	expenseData = make([]float64, len(labels))
	for i, m := range labels {
		incomeData[i] = incomeByMonth[m]
		expenseData[i] = expenseByMonth[m]
	}
	return labels, incomeData, expenseData
}

// HighestCategory returns the category with the largest sum. Ties break on
// the lexicographically smaller name so the result is deterministic.
// ok is false when the map is empty.
func HighestCategory(byCategory map[string]float64) (name string, ok bool) {
	for cat, sum := range byCategory {
		if !ok || sum > byCategory[name] || (sum == byCategory[name] && cat < name) {
			name = cat
			ok = true
		}
	}
	return name, ok
}

// AvgDaily divides a total over a day count, guarding the zero-days case.
func AvgDaily(total float64, days int) float64 {
	if days < 1 {
		return 0
	}
	return total / float64(days)
}
