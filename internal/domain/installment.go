package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the derived payment state of an installment.
type InstallmentStatus string

const (
	StatusPending InstallmentStatus = "pending"
	StatusPartial InstallmentStatus = "partial"
	StatusOverdue InstallmentStatus = "overdue"
	StatusPaid    InstallmentStatus = "paid"
)

// Installment is one scheduled due payment within a loan's term.
type Installment struct {
	ID            string
	LoanID        string
	SequenceNo    int
	DueDate       time.Time
	PrincipalDue  decimal.Decimal
	InterestDue   decimal.Decimal
	TotalDue      decimal.Decimal
	Balance       decimal.Decimal // principal remaining after this installment
	PaidAmount    decimal.Decimal
	PaidDate      *time.Time
	PenaltyAmount decimal.Decimal
	OverdueDays   int
	Status        InstallmentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the installment record for self-contradictory state.
func (i *Installment) Validate() error {
	if i.SequenceNo < 1 {
		return fmt.Errorf("%w: sequence number must be at least 1", ErrInvalidInstallmentState)
	}

	if i.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidInstallmentState)
	}

	if i.TotalDue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: total due must be positive", ErrInvalidInstallmentState)
	}

	if i.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paid amount must not be negative", ErrInvalidInstallmentState)
	}

	if !i.TotalDue.Equal(i.PrincipalDue.Add(i.InterestDue)) {
		return fmt.Errorf("%w: total due must equal principal plus interest", ErrInvalidInstallmentState)
	}

	return nil
}

// IsPaid reports whether the installment is fully settled.
func (i *Installment) IsPaid() bool {
	return i.PaidAmount.GreaterThanOrEqual(i.TotalDue)
}

// Outstanding returns the unpaid portion of the total due.
func (i *Installment) Outstanding() decimal.Decimal {
	return i.TotalDue.Sub(i.PaidAmount)
}
