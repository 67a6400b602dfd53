package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendtrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the single storage backend. All methods take the
// profile id explicitly; there is no ambient "current profile" state here.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	if err := repo.seedDefaults(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database connection, used by the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// seedDefaults creates the default profiles when the profiles table is empty
// and makes sure every profile carries the default category set.
func (r *SQLiteRepository) seedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return fmt.Errorf("count profiles: %w", err)
	}

	if count == 0 {
		for _, name := range core.DefaultProfileNames {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO profiles (name, theme, created_date) VALUES (?, 'modern', ?)`,
				name, core.Timestamp())
			if err != nil {
				return fmt.Errorf("insert default profile %q: %w", name, err)
			}
		}
		slog.InfoContext(ctx, "Seeded default profiles", "count", len(core.DefaultProfileNames))
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM profiles`)
	if err != nil {
		return fmt.Errorf("list profile ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate profile ids: %w", err)
	}

	for _, id := range ids {
		for _, cat := range core.DefaultCategoryNames {
			_, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO categories (profile_id, name) VALUES (?, ?)`, id, cat)
			if err != nil {
				return fmt.Errorf("seed category %q for profile %d: %w", cat, id, err)
			}
		}
	}

	return nil
}

// ListProfiles returns every profile.
func (r *SQLiteRepository) ListProfiles(ctx context.Context) ([]core.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, theme, created_date FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []core.Profile
	for rows.Next() {
		var p core.Profile
		var created sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Theme, &created); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.CreatedDate = created.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// RenameProfile updates the profile name. Renaming an unknown id is a no-op.
func (r *SQLiteRepository) RenameProfile(ctx context.Context, profileID int64, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET name = ? WHERE id = ?`, name, profileID)
	if err != nil {
		return fmt.Errorf("rename profile %d: %w", profileID, err)
	}
	slog.InfoContext(ctx, "Profile renamed", "profile_id", profileID, "name", name)
	return nil
}

// UpdateProfileTheme updates the profile theme.
func (r *SQLiteRepository) UpdateProfileTheme(ctx context.Context, profileID int64, theme string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET theme = ? WHERE id = ?`, theme, profileID)
	if err != nil {
		return fmt.Errorf("update profile %d theme: %w", profileID, err)
	}
	return nil
}

// ListCategories returns the profile's categories in alphabetical order.
func (r *SQLiteRepository) ListCategories(ctx context.Context, profileID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, name FROM categories WHERE profile_id = ? ORDER BY name`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CreateCategory inserts a category, returning core.ErrCategoryExists when
// the (profile, name) pair is already present.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, profileID int64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (profile_id, name) VALUES (?, ?)`, profileID, name)
	if err != nil {
		return fmt.Errorf("create category %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create category %q: rows affected: %w", name, err)
	}
	if affected == 0 {
		return core.ErrCategoryExists
	}
	slog.InfoContext(ctx, "Category created", "profile_id", profileID, "name", name)
	return nil
}

// DeleteCategory removes a category by name. Expenses and budgets that
// reference the name are left untouched.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, profileID int64, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE profile_id = ? AND name = ?`, profileID, name)
	if err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	slog.InfoContext(ctx, "Category deleted", "profile_id", profileID, "name", name)
	return nil
}

// CreateExpense inserts an expense row and returns its id.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (profile_id, amount, description, payment_method, category, date, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ProfileID, e.Amount, e.Description, e.PaymentMethod, e.Category, e.Date, e.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create expense: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"profile_id", e.ProfileID,
		"description", e.Description,
		"amount", e.Amount,
		"category", e.Category,
		"date", e.Date)
	return id, nil
}

// ListExpenses returns the profile's expenses ordered by date descending.
// Order among same-date rows is unspecified.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, profileID int64) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, amount, description, payment_method, category, date, timestamp
		 FROM expenses WHERE profile_id = ? ORDER BY date DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Amount, &e.Description,
			&e.PaymentMethod, &e.Category, &e.Date, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateIncome inserts an income row and returns its id.
func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO income (profile_id, amount, source, type, date, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.ProfileID, in.Amount, in.Source, in.Type, in.Date, in.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("create income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create income: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"profile_id", in.ProfileID,
		"source", in.Source,
		"amount", in.Amount,
		"date", in.Date)
	return id, nil
}

// ListIncome returns the profile's income rows ordered by date descending.
func (r *SQLiteRepository) ListIncome(ctx context.Context, profileID int64) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, amount, source, type, date, timestamp
		 FROM income WHERE profile_id = ? ORDER BY date DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var in core.Income
		if err := rows.Scan(&in.ID, &in.ProfileID, &in.Amount, &in.Source,
			&in.Type, &in.Date, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// MonthlyBudget returns the profile-wide monthly budget, or 0 when unset.
func (r *SQLiteRepository) MonthlyBudget(ctx context.Context, profileID int64) (float64, error) {
	var amount float64
	err := r.db.QueryRowContext(ctx,
		`SELECT amount FROM budgets WHERE profile_id = ? AND category = ? AND period = 'monthly'`,
		profileID, core.SentinelMonthlyBudget).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("monthly budget: %w", err)
	}
	return amount, nil
}

// SetMonthlyBudget replaces the sentinel monthly budget row.
func (r *SQLiteRepository) SetMonthlyBudget(ctx context.Context, profileID int64, amount float64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE profile_id = ? AND category = ? AND period = 'monthly'`,
		profileID, core.SentinelMonthlyBudget)
	if err != nil {
		return fmt.Errorf("clear monthly budget: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO budgets (profile_id, category, amount, period) VALUES (?, ?, ?, 'monthly')`,
		profileID, core.SentinelMonthlyBudget, amount)
	if err != nil {
		return fmt.Errorf("set monthly budget: %w", err)
	}
	slog.InfoContext(ctx, "Monthly budget set", "profile_id", profileID, "amount", amount)
	return nil
}

// CategoryBudgets returns the per-category budget mapping for the profile.
func (r *SQLiteRepository) CategoryBudgets(ctx context.Context, profileID int64) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, amount FROM budgets WHERE profile_id = ? AND category != ?`,
		profileID, core.SentinelMonthlyBudget)
	if err != nil {
		return nil, fmt.Errorf("category budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[string]float64)
	for rows.Next() {
		var cat string
		var amount float64
		if err := rows.Scan(&cat, &amount); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets[cat] = amount
	}
	return budgets, rows.Err()
}

// SetCategoryBudgets re-saves the submitted category budgets. Only the
// categories present in the map are replaced; other rows stay untouched.
func (r *SQLiteRepository) SetCategoryBudgets(ctx context.Context, profileID int64, budgets map[string]float64) error {
	for cat, amount := range budgets {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM budgets WHERE profile_id = ? AND category = ? AND period = 'monthly'`,
			profileID, cat)
		if err != nil {
			return fmt.Errorf("clear budget for %q: %w", cat, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO budgets (profile_id, category, amount, period) VALUES (?, ?, ?, 'monthly')`,
			profileID, cat, amount)
		if err != nil {
			return fmt.Errorf("set budget for %q: %w", cat, err)
		}
	}
	slog.InfoContext(ctx, "Category budgets saved", "profile_id", profileID, "count", len(budgets))
	return nil
}

// SumExpenses returns the expense total over an inclusive date range.
func (r *SQLiteRepository) SumExpenses(ctx context.Context, profileID int64, dr core.DateRange) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM expenses WHERE profile_id = ? AND date >= ? AND date <= ?`,
		profileID, dr.Start, dr.End).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total.Float64, nil
}

// SumIncome returns the income total over an inclusive date range.
func (r *SQLiteRepository) SumIncome(ctx context.Context, profileID int64, dr core.DateRange) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM income WHERE profile_id = ? AND date >= ? AND date <= ?`,
		profileID, dr.Start, dr.End).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum income: %w", err)
	}
	return total.Float64, nil
}

// CountExpenses returns the number of expense rows in the range.
func (r *SQLiteRepository) CountExpenses(ctx context.Context, profileID int64, dr core.DateRange) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE profile_id = ? AND date >= ? AND date <= ?`,
		profileID, dr.Start, dr.End).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) sumGrouped(ctx context.Context, query string, profileID int64, dr core.DateRange) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, query, profileID, dr.Start, dr.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var key sql.NullString
		var sum float64
		if err := rows.Scan(&key, &sum); err != nil {
			return nil, err
		}
		sums[key.String] = sum
	}
	return sums, rows.Err()
}

// SumExpensesByCategory groups the range's expense totals by category name.
func (r *SQLiteRepository) SumExpensesByCategory(ctx context.Context, profileID int64, dr core.DateRange) (map[string]float64, error) {
	sums, err := r.sumGrouped(ctx,
		`SELECT category, SUM(amount) FROM expenses
		 WHERE profile_id = ? AND date >= ? AND date <= ? GROUP BY category`, profileID, dr)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	return sums, nil
}

// SumExpensesByPayment groups the range's expense totals by payment method.
func (r *SQLiteRepository) SumExpensesByPayment(ctx context.Context, profileID int64, dr core.DateRange) (map[string]float64, error) {
	sums, err := r.sumGrouped(ctx,
		`SELECT payment_method, SUM(amount) FROM expenses
		 WHERE profile_id = ? AND date >= ? AND date <= ? GROUP BY payment_method`, profileID, dr)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by payment: %w", err)
	}
	return sums, nil
}

// SumExpensesByDate groups the range's expense totals by calendar day.
// Days with no expenses are absent; the dense trend fill happens in core.
func (r *SQLiteRepository) SumExpensesByDate(ctx context.Context, profileID int64, dr core.DateRange) (map[string]float64, error) {
	sums, err := r.sumGrouped(ctx,
		`SELECT date, SUM(amount) FROM expenses
		 WHERE profile_id = ? AND date >= ? AND date <= ? GROUP BY date`, profileID, dr)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by date: %w", err)
	}
	return sums, nil
}

// SumExpensesByMonth groups the range's expense totals by YYYY-MM.
func (r *SQLiteRepository) SumExpensesByMonth(ctx context.Context, profileID int64, dr core.DateRange) (map[string]float64, error) {
	sums, err := r.sumGrouped(ctx,
		`SELECT strftime('%Y-%m', date), SUM(amount) FROM expenses
		 WHERE profile_id = ? AND date >= ? AND date <= ? GROUP BY strftime('%Y-%m', date)`, profileID, dr)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by month: %w", err)
	}
	return sums, nil
}

// SumIncomeByMonth groups the range's income totals by YYYY-MM.
func (r *SQLiteRepository) SumIncomeByMonth(ctx context.Context, profileID int64, dr core.DateRange) (map[string]float64, error) {
	sums, err := r.sumGrouped(ctx,
		`SELECT strftime('%Y-%m', date), SUM(amount) FROM income
		 WHERE profile_id = ? AND date >= ? AND date <= ? GROUP BY strftime('%Y-%m', date)`, profileID, dr)
	if err != nil {
		return nil, fmt.Errorf("sum income by month: %w", err)
	}
	return sums, nil
}

// FirstExpenseDate returns the earliest expense date for the profile,
// or "" when the profile has no expenses.
func (r *SQLiteRepository) FirstExpenseDate(ctx context.Context, profileID int64) (string, error) {
	var first sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT MIN(date) FROM expenses WHERE profile_id = ?`, profileID).Scan(&first)
	if err != nil {
		return "", fmt.Errorf("first expense date: %w", err)
	}
	return first.String, nil
}

// CreateCreditStatement inserts an imported statement row and returns its id.
func (r *SQLiteRepository) CreateCreditStatement(ctx context.Context, s core.CreditStatement) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO credit_statements (profile_id, card_name, amount, merchant, category, date, uploaded_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ProfileID, s.CardName, s.Amount, s.Merchant, s.Category, s.Date, s.UploadedDate)
	if err != nil {
		return 0, fmt.Errorf("create credit statement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create credit statement: last insert id: %w", err)
	}
	return id, nil
}

// ListCreditStatements returns the profile's imported statement rows,
// ordered by date descending.
func (r *SQLiteRepository) ListCreditStatements(ctx context.Context, profileID int64) ([]core.CreditStatement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, card_name, amount, merchant, category, date, uploaded_date
		 FROM credit_statements WHERE profile_id = ? ORDER BY date DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list credit statements: %w", err)
	}
	defer rows.Close()

	var statements []core.CreditStatement
	for rows.Next() {
		var s core.CreditStatement
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.CardName, &s.Amount,
			&s.Merchant, &s.Category, &s.Date, &s.UploadedDate); err != nil {
			return nil, fmt.Errorf("scan credit statement: %w", err)
		}
		statements = append(statements, s)
	}
	return statements, rows.Err()
}
