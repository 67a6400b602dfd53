package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical wire and storage format for transaction dates.
// Dates are fixed-width YYYY-MM-DD strings, so lexicographic comparison in
// SQL range filters matches chronological order.
const DateLayout = "2006-01-02"

type (
	// Profile is a named user context partitioning all financial data.
	Profile struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Theme       string `json:"theme"`
		CreatedDate string `json:"-"`
	}

	// Category is a user-editable expense label scoped to a profile.
	// Expenses and budgets reference categories by name, not by id.
	Category struct {
		ID        int64  `json:"id"`
		ProfileID int64  `json:"-"`
		Name      string `json:"name"`
	}

	Expense struct {
		ID            int64   `json:"id"`
		ProfileID     int64   `json:"-"`
		Amount        float64 `json:"amount"`
		Description   string  `json:"description"`
		PaymentMethod string  `json:"paymentMethod"`
		Category      string  `json:"category"`
		Date          string  `json:"date"`
		Timestamp     string  `json:"-"`
	}

	Income struct {
		ID        int64   `json:"id"`
		ProfileID int64   `json:"-"`
		Amount    float64 `json:"amount"`
		Source    string  `json:"source"`
		Type      string  `json:"type"`
		Date      string  `json:"date"`
		Timestamp string  `json:"-"`
	}

	// Budget is a monthly spending limit. The row with category
	// SentinelMonthlyBudget holds the whole-profile monthly budget;
	// every other row is a per-category limit.
	Budget struct {
		ID        int64   `json:"id"`
		ProfileID int64   `json:"-"`
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		Period    string  `json:"period"`
	}

	// CreditStatement is one imported credit-card statement row. Each row
	// is mirrored into an Expense with payment method "Credit Card".
	CreditStatement struct {
		ID           int64   `json:"id"`
		ProfileID    int64   `json:"-"`
		CardName     string  `json:"card_name"`
		Amount       float64 `json:"amount"`
		Merchant     string  `json:"merchant"`
		Category     string  `json:"category"`
		Date         string  `json:"date"`
		UploadedDate string  `json:"-"`
	}
)

// SentinelMonthlyBudget is the budget category keyed by literal "MONTHLY"
// that represents the profile-wide monthly budget.
const SentinelMonthlyBudget = "MONTHLY"

// CreditCardPaymentMethod is the payment method stamped on expenses
// mirrored from imported credit statements.
const CreditCardPaymentMethod = "Credit Card"

// DefaultCategoryNames are seeded for every profile at first run.
var DefaultCategoryNames = []string{
	"Food", "Transport", "Utilities", "Entertainment",
	"Shopping", "Healthcare", "Miscellaneous",
}

// DefaultProfileNames are seeded when the profiles table is empty.
var DefaultProfileNames = []string{"Person A", "Person B", "Person C"}

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyPayment      = errors.New("empty payment method")
	ErrEmptyCategory     = errors.New("empty category")
	ErrEmptySource       = errors.New("empty source")
	ErrEmptyType         = errors.New("empty type")
	ErrEmptyDate         = errors.New("empty date")
	ErrEmptyName         = errors.New("empty name")
	ErrCategoryExists    = errors.New("category exists")
	ErrProfileNotFound   = errors.New("profile not found")
)

// Validate checks that the required expense fields are present.
// Field presence is the only contract; date format and amount range
// are not enforced on recording.
func (e Expense) Validate() error {
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.PaymentMethod) == "" {
		return ErrEmptyPayment
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}

// Validate checks that the required income fields are present.
func (i Income) Validate() error {
	if i.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(i.Source) == "" {
		return ErrEmptySource
	}
	if strings.TrimSpace(i.Type) == "" {
		return ErrEmptyType
	}
	if strings.TrimSpace(i.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}

// Today returns the current date in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Timestamp returns the current instant in RFC 3339 form, used for the
// server-stamped creation time distinct from the transaction date.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}
