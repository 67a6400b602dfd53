package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spendtrack/internal/core"
	"spendtrack/internal/importer"
	"spendtrack/internal/storage"
)

// CreditService turns an uploaded statement CSV into credit_statements rows,
// each mirrored into an expense with payment method "Credit Card".
//
// Import is best-effort by policy: a bad row is recorded in the report and
// skipped, it never aborts or rolls back the rest of the file.
type CreditService struct {
	repo      *storage.SQLiteRepository
	uploadDir string
}

// ImportReport summarizes one statement import.
type ImportReport struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Errors   []importer.RowError `json:"errors,omitempty"`
}

func NewCreditService(repo *storage.SQLiteRepository, uploadDir string) *CreditService {
	return &CreditService{repo: repo, uploadDir: uploadDir}
}

// ImportStatement saves the uploaded file under the uploads directory, parses
// it and inserts one statement row plus one mirrored expense per parsed line.
func (s *CreditService) ImportStatement(ctx context.Context, profileID int64, filename string, file io.Reader) (*ImportReport, error) {
	name := sanitizeFilename(filename)
	path, err := s.saveUpload(name, file)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen upload: %w", err)
	}
	defer f.Close()

	parsed, err := importer.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	report := &ImportReport{Errors: parsed.Skipped}
	uploaded := core.Timestamp()

	for _, row := range parsed.Rows {
		_, err := s.repo.CreateCreditStatement(ctx, core.CreditStatement{
			ProfileID:    profileID,
			CardName:     name,
			Amount:       row.Amount,
			Merchant:     row.Merchant,
			Category:     row.Category,
			Date:         row.Date,
			UploadedDate: uploaded,
		})
		if err != nil {
			slog.ErrorContext(ctx, "Statement row insert failed",
				"merchant", row.Merchant, "date", row.Date, "error", err)
			report.Errors = append(report.Errors, importer.RowError{Err: err.Error()})
			continue
		}

		_, err = s.repo.CreateExpense(ctx, core.Expense{
			ProfileID:     profileID,
			Amount:        row.Amount,
			Description:   row.Merchant,
			PaymentMethod: core.CreditCardPaymentMethod,
			Category:      row.Category,
			Date:          row.Date,
			Timestamp:     core.Timestamp(),
		})
		if err != nil {
			slog.ErrorContext(ctx, "Mirrored expense insert failed",
				"merchant", row.Merchant, "date", row.Date, "error", err)
			report.Errors = append(report.Errors, importer.RowError{Err: err.Error()})
			continue
		}

		report.Imported++
	}

	report.Skipped = len(report.Errors)
	slog.InfoContext(ctx, "Statement imported",
		"file", name,
		"profile_id", profileID,
		"imported", report.Imported,
		"skipped", report.Skipped)

	return report, nil
}

// saveUpload retains the raw statement file on disk.
func (s *CreditService) saveUpload(name string, file io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}

// sanitizeFilename strips any path components and characters that could
// escape the uploads directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "statement.csv"
	}
	return name
}
