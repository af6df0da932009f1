package domain

import "errors"

var (
	// Loan errors
	ErrInvalidLoanTerms = errors.New("invalid loan terms")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrLoanNotSettled   = errors.New("loan has unpaid installments")

	// Installment errors
	ErrInvalidInstallmentState = errors.New("invalid installment state")
	ErrInstallmentNotFound     = errors.New("installment not found")
	ErrOverpayment             = errors.New("payment exceeds amount due")
	ErrInvalidPayment          = errors.New("invalid payment amount")

	// Penalty rule errors
	ErrInvalidRateType    = errors.New("invalid penalty rate type")
	ErrInvalidPenaltyRule = errors.New("invalid penalty rule")
	ErrRuleNotFound       = errors.New("penalty rule not found")

	// Frequency errors
	ErrInvalidFrequency = errors.New("invalid repayment frequency")
)
