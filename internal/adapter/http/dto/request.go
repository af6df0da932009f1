package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// CreateLoanRequest represents a request to originate a loan.
type CreateLoanRequest struct {
	BorrowerID  string          `json:"borrower_id"`
	Currency    string          `json:"currency"`
	Principal   decimal.Decimal `json:"principal"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Tenure      int             `json:"tenure"`
	StartDate   time.Time       `json:"start_date"`
	Frequency   string          `json:"frequency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.OriginateLoanInput {
	frequency := r.Frequency
	if frequency == "" {
		frequency = "monthly"
	}

	return usecase.OriginateLoanInput{
		BorrowerID:  r.BorrowerID,
		Currency:    r.Currency,
		Principal:   r.Principal,
		RatePercent: r.RatePercent,
		Tenure:      r.Tenure,
		StartDate:   r.StartDate,
		Frequency:   frequency,
	}
}

// RecordPaymentRequest represents a request to record a payment against an
// installment.
type RecordPaymentRequest struct {
	SequenceNo int             `json:"sequence_no"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(loanID string) usecase.RecordPaymentInput {
	input := usecase.RecordPaymentInput{
		LoanID:     loanID,
		SequenceNo: r.SequenceNo,
		Amount:     r.Amount,
	}

	if r.PaidAt != nil {
		input.PaidAt = *r.PaidAt
	}

	return input
}

// CreateRuleRequest represents a request to create a penalty rule.
type CreateRuleRequest struct {
	Name      string          `json:"name"`
	RateType  string          `json:"rate_type"`
	Rate      decimal.Decimal `json:"rate"`
	GraceDays int             `json:"grace_days"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRuleRequest) ToUseCaseInput() usecase.CreateRuleInput {
	return usecase.CreateRuleInput{
		Name:      r.Name,
		RateType:  r.RateType,
		Rate:      r.Rate,
		GraceDays: r.GraceDays,
	}
}

// RunSweepRequest represents a request to run a penalty accrual sweep.
type RunSweepRequest struct {
	AsOf *time.Time `json:"as_of,omitempty"`
}
