package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"spendtrack/internal/storage"
)

// ExportService streams a profile's expenses and income as CSV.
type ExportService struct {
	repo *storage.SQLiteRepository
}

// ExportHeader is the fixed column header of the export file.
var ExportHeader = []string{"Type", "Date", "Amount", "Category", "Description", "Payment Method"}

func NewExportService(repo *storage.SQLiteRepository) *ExportService {
	return &ExportService{repo: repo}
}

// ExportFilename names the download after the export day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("expenses_export_%s.csv", now.Format("20060102"))
}

// WriteCSV writes the export: header, then expenses, then income, each
// ordered by date descending. Income rows have no category or payment
// method of their own; source and type land in the description and
// payment-method columns.
func (s *ExportService) WriteCSV(ctx context.Context, profileID int64, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	expenses, err := s.repo.ListExpenses(ctx, profileID)
	if err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}
	for _, e := range expenses {
		row := []string{"Expense", e.Date, formatAmount(e.Amount), e.Category, e.Description, e.PaymentMethod}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expense row: %w", err)
		}
	}

	incomes, err := s.repo.ListIncome(ctx, profileID)
	if err != nil {
		return fmt.Errorf("export income: %w", err)
	}
	for _, in := range incomes {
		row := []string{"Income", in.Date, formatAmount(in.Amount), "", in.Source, in.Type}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write income row: %w", err)
		}
	}

	return cw.Error()
}

// formatAmount renders the shortest exact decimal form of the amount so
// that exporting and re-importing a row preserves it.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
