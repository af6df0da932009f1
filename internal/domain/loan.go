package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the length of one repayment period.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyDaily   Frequency = "daily"
)

// ParseFrequency parses a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyMonthly, FrequencyWeekly, FrequencyDaily:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// AddPeriods returns t advanced by n periods of this frequency.
func (f Frequency) AddPeriods(t time.Time, n int) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*n)
	case FrequencyDaily:
		return t.AddDate(0, 0, n)
	default:
		return t.AddDate(0, n, 0)
	}
}

// LoanTerms are the immutable inputs to schedule generation.
type LoanTerms struct {
	Principal   decimal.Decimal
	RatePercent decimal.Decimal // flat rate per period, on original principal
	Tenure      int
	StartDate   time.Time
	Frequency   Frequency
}

// Validate validates loan terms.
func (t *LoanTerms) Validate() error {
	if t.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidLoanTerms)
	}

	if t.Tenure < 1 {
		return fmt.Errorf("%w: tenure must be at least 1", ErrInvalidLoanTerms)
	}

	if t.RatePercent.IsNegative() {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidLoanTerms)
	}

	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidLoanTerms)
	}

	if _, err := ParseFrequency(string(t.Frequency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLoanTerms, err)
	}

	return nil
}

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusClosed LoanStatus = "closed"
)

// Loan represents an originated loan and its terms.
type Loan struct {
	ID         string
	BorrowerID string
	Currency   string
	Terms      LoanTerms
	Status     LoanStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
