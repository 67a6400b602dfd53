package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
	"spendtrack/internal/importer"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "expenses_export_20240615.csv", ExportFilename(now))
}

func TestWriteCSV(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExportService(repo)
	ctx := context.Background()

	seedExpense(t, repo, 1, 100, "Food", "2024-01-05")
	seedExpense(t, repo, 1, 25.50, "Shopping", "2024-02-01")
	_, err := repo.CreateIncome(ctx, core.Income{
		ProfileID: 1, Amount: 2000, Source: "Salary", Type: "Regular",
		Date: "2024-01-31", Timestamp: core.Timestamp(),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, 1, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, ExportHeader, records[0])
	// Expenses first (date descending), then income.
	assert.Equal(t, []string{"Expense", "2024-02-01", "25.5", "Shopping", "seed", "Cash"}, records[1])
	assert.Equal(t, []string{"Expense", "2024-01-05", "100", "Food", "seed", "Cash"}, records[2])
	assert.Equal(t, []string{"Income", "2024-01-31", "2000", "", "Salary", "Regular"}, records[3])
}

// Exported expense rows can be fed back through the statement importer
// with date, amount and category preserved.
func TestExportImportRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExportService(repo)
	ctx := context.Background()

	seedExpense(t, repo, 1, 42.75, "Food", "2024-03-10")

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, 1, &buf))

	parsed, err := importer.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)

	row := parsed.Rows[0]
	assert.Equal(t, "2024-03-10", row.Date)
	assert.Equal(t, 42.75, row.Amount)
	assert.Equal(t, "Food", row.Category)
	assert.Equal(t, "seed", row.Merchant) // Description column feeds merchant
}
