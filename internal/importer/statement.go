// Package importer parses uploaded credit-card statement CSV files.
//
// Statement exports differ between card issuers, so column lookup runs
// through case-insensitive fallback chains (Merchant falls back to
// Description) and amount parsing tolerates thousands separators and a
// leading currency symbol. Parsing is best-effort: malformed rows are
// reported and skipped, never failing the file as a whole.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to rows without a category column or value.
const DefaultCategory = "Miscellaneous"

// Row is one successfully parsed statement line. Amount is always
// non-negative: statements report charges as negative values, so the
// absolute value is taken.
type Row struct {
	Date     string
	Merchant string
	Amount   float64
	Category string
}

// RowError describes a skipped line. Line is 1-based and counts the
// header row.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

// Result is the outcome of parsing one statement file.
type Result struct {
	Rows    []Row
	Skipped []RowError
}

var (
	ErrEmptyFile  = errors.New("statement file has no header row")
	ErrNoColumns  = errors.New("statement header has no recognized columns")
)

// currencyRunes are stripped from amount cells before numeric parsing.
const currencyRunes = "₹€$£"

// columns maps logical fields to header fallback chains, checked in order.
var columns = map[string][]string{
	"date":     {"date"},
	"merchant": {"merchant", "description"},
	"amount":   {"amount"},
	"category": {"category"},
}

// Parse reads a statement CSV and returns parsed rows plus per-line
// errors for every row it had to skip.
func Parse(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading statement header: %w", err)
	}

	idx := headerIndex(header)
	if len(idx) == 0 {
		return nil, ErrNoColumns
	}

	result := &Result{}
	line := 1
	for {
		line++
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err.Error()})
			continue
		}

		row, err := parseRow(rec, idx)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// headerIndex resolves the fallback chains against the actual header.
// A UTF-8 BOM on the first cell is tolerated.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for field, chain := range columns {
		for _, want := range chain {
			for i, cell := range header {
				cell = strings.TrimPrefix(cell, "\ufeff")
				if strings.EqualFold(strings.TrimSpace(cell), want) {
					idx[field] = i
					break
				}
			}
			if _, ok := idx[field]; ok {
				break
			}
		}
	}
	return idx
}

func parseRow(rec []string, idx map[string]int) (Row, error) {
	row := Row{Category: DefaultCategory}

	if i, ok := idx["date"]; ok && i < len(rec) {
		row.Date = strings.TrimSpace(rec[i])
	}
	if i, ok := idx["merchant"]; ok && i < len(rec) {
		row.Merchant = strings.TrimSpace(rec[i])
	}
	if i, ok := idx["category"]; ok && i < len(rec) {
		if cat := strings.TrimSpace(rec[i]); cat != "" {
			row.Category = cat
		}
	}

	raw := "0"
	if i, ok := idx["amount"]; ok && i < len(rec) {
		raw = rec[i]
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return Row{}, err
	}
	row.Amount = amount

	return row, nil
}

// parseAmount normalizes a statement amount cell: thousands separators and
// currency symbols are stripped and the absolute value is returned.
func parseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || strings.ContainsRune(currencyRunes, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		cleaned = "0"
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d.Abs().InexactFloat64(), nil
}
