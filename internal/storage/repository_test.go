package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSeedDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "Person A", profiles[0].Name)
	assert.Equal(t, "modern", profiles[0].Theme)

	for _, p := range profiles {
		cats, err := repo.ListCategories(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, cats, len(core.DefaultCategoryNames))
		// Alphabetical ordering.
		assert.Equal(t, "Entertainment", cats[0].Name)
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

func TestCreateCategoryConflict(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, 1, "Travel"))
	err := repo.CreateCategory(ctx, 1, "Travel")
	assert.ErrorIs(t, err, core.ErrCategoryExists)

	// Same name under another profile is fine.
	assert.NoError(t, repo.CreateCategory(ctx, 2, "Travel"))
}

func TestDeleteCategoryLeavesReferencesAlone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateExpense(ctx, core.Expense{
		ProfileID: 1, Amount: 42, Description: "lunch",
		PaymentMethod: "Cash", Category: "Food",
		Date: "2024-01-05", Timestamp: core.Timestamp(),
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetCategoryBudgets(ctx, 1, map[string]float64{"Food": 300}))

	require.NoError(t, repo.DeleteCategory(ctx, 1, "Food"))

	expenses, err := repo.ListExpenses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Food", expenses[0].Category)

	budgets, err := repo.CategoryBudgets(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 300.0, budgets["Food"])
}

func TestExpenseAggregates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []core.Expense{
		{ProfileID: 1, Amount: 100, Description: "groceries", PaymentMethod: "Cash", Category: "Food", Date: "2024-01-05"},
		{ProfileID: 1, Amount: 50, Description: "dinner", PaymentMethod: "Credit Card", Category: "Food", Date: "2024-01-10"},
		{ProfileID: 1, Amount: 30, Description: "bus pass", PaymentMethod: "Cash", Category: "Transport", Date: "2024-02-01"},
		{ProfileID: 2, Amount: 999, Description: "other profile", PaymentMethod: "Cash", Category: "Food", Date: "2024-01-07"},
	}
	for _, e := range seed {
		e.Timestamp = core.Timestamp()
		_, err := repo.CreateExpense(ctx, e)
		require.NoError(t, err)
	}

	jan := core.DateRange{Start: "2024-01-01", End: "2024-01-31"}

	total, err := repo.SumExpenses(ctx, 1, jan)
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)

	count, err := repo.CountExpenses(ctx, 1, jan)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	byCat, err := repo.SumExpensesByCategory(ctx, 1, jan)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Food": 150}, byCat)

	byPay, err := repo.SumExpensesByPayment(ctx, 1, jan)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Cash": 100, "Credit Card": 50}, byPay)

	byDate, err := repo.SumExpensesByDate(ctx, 1, jan)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2024-01-05": 100, "2024-01-10": 50}, byDate)

	all := core.DateRange{Start: "1970-01-01", End: "2024-12-31"}
	byMonth, err := repo.SumExpensesByMonth(ctx, 1, all)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2024-01": 150, "2024-02": 30}, byMonth)

	first, err := repo.FirstExpenseDate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", first)

	first, err = repo.FirstExpenseDate(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, first)
}

func TestListExpensesOrderedByDateDesc(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-05", "2024-03-01", "2024-02-10"} {
		_, err := repo.CreateExpense(ctx, core.Expense{
			ProfileID: 1, Amount: 1, Description: "x",
			PaymentMethod: "Cash", Category: "Food", Date: date,
		})
		require.NoError(t, err)
	}

	expenses, err := repo.ListExpenses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, "2024-03-01", expenses[0].Date)
	assert.Equal(t, "2024-02-10", expenses[1].Date)
	assert.Equal(t, "2024-01-05", expenses[2].Date)
}

func TestIncomeRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateIncome(ctx, core.Income{
		ProfileID: 1, Amount: 2500, Source: "Salary", Type: "Regular",
		Date: "2024-01-31", Timestamp: core.Timestamp(),
	})
	require.NoError(t, err)
	_, err = repo.CreateIncome(ctx, core.Income{
		ProfileID: 1, Amount: 300, Source: "Freelance", Type: "Additional",
		Date: "2024-02-15", Timestamp: core.Timestamp(),
	})
	require.NoError(t, err)

	incomes, err := repo.ListIncome(ctx, 1)
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, "Freelance", incomes[0].Source)

	total, err := repo.SumIncome(ctx, 1, core.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, total)

	byMonth, err := repo.SumIncomeByMonth(ctx, 1, core.DateRange{Start: "1970-01-01", End: "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2024-01": 2500, "2024-02": 300}, byMonth)
}

func TestBudgets(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Unset monthly budget reads as zero.
	monthly, err := repo.MonthlyBudget(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, monthly)

	require.NoError(t, repo.SetMonthlyBudget(ctx, 1, 1200))
	require.NoError(t, repo.SetMonthlyBudget(ctx, 1, 1500)) // replace, not append
	monthly, err = repo.MonthlyBudget(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, monthly)

	require.NoError(t, repo.SetCategoryBudgets(ctx, 1, map[string]float64{"Food": 400, "Transport": 100}))
	require.NoError(t, repo.SetCategoryBudgets(ctx, 1, map[string]float64{"Food": 350}))

	budgets, err := repo.CategoryBudgets(ctx, 1)
	require.NoError(t, err)
	// Submitted category replaced, untouched category kept, sentinel excluded.
	assert.Equal(t, map[string]float64{"Food": 350, "Transport": 100}, budgets)
}

func TestCreditStatements(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateCreditStatement(ctx, core.CreditStatement{
		ProfileID: 1, CardName: "statement.csv", Amount: 25.50,
		Merchant: "Store", Category: "Shopping", Date: "2024-02-01",
		UploadedDate: core.Timestamp(),
	})
	require.NoError(t, err)

	statements, err := repo.ListCreditStatements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, 25.50, statements[0].Amount)
	assert.Equal(t, "Store", statements[0].Merchant)

	statements, err = repo.ListCreditStatements(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, statements)
}
