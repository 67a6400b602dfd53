package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
)

func TestImportStatement(t *testing.T) {
	repo := newTestRepo(t)
	uploadDir := t.TempDir()
	svc := NewCreditService(repo, uploadDir)
	ctx := context.Background()

	csv := "Date,Merchant,Amount,Category\n" +
		"2024-02-01,Store,-25.50,Shopping\n" +
		"2024-02-02,Cafe,4.20,\n" +
		"2024-02-03,Broken,nope,Food\n"

	report, err := svc.ImportStatement(ctx, 1, "statement.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 4, report.Errors[0].Line)

	// One statement row plus one mirrored expense per imported line.
	statements, err := repo.ListCreditStatements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, statements, 2)
	assert.Equal(t, "statement.csv", statements[0].CardName)

	expenses, err := repo.ListExpenses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	for _, e := range expenses {
		assert.Equal(t, core.CreditCardPaymentMethod, e.PaymentMethod)
	}

	// Negative statement amount normalized to a positive expense.
	byDate := map[string]float64{}
	for _, e := range expenses {
		byDate[e.Date] = e.Amount
	}
	assert.Equal(t, 25.50, byDate["2024-02-01"])

	// Missing category defaults.
	assert.Equal(t, "Miscellaneous", byDate2Category(expenses, "2024-02-02"))

	// Raw upload retained on disk.
	_, err = os.Stat(filepath.Join(uploadDir, "statement.csv"))
	assert.NoError(t, err)
}

func byDate2Category(expenses []core.Expense, date string) string {
	for _, e := range expenses {
		if e.Date == date {
			return e.Category
		}
	}
	return ""
}

func TestImportStatementRejectsUnparseableFile(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewCreditService(repo, t.TempDir())

	_, err := svc.ImportStatement(context.Background(), 1, "bad.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"statement.csv", "statement.csv"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.csv", "evil.csv"},
		{"my statement (jan).csv", "my_statement__jan_.csv"},
		{"", "statement.csv"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.in), "input %q", tc.in)
	}
}
