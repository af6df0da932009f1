package domain

import "time"

// Event types
const (
	EventTypeLoanCreated        = "loan.created"
	EventTypeLoanClosed         = "loan.closed"
	EventTypeInstallmentPaid    = "installment.paid"
	EventTypeInstallmentOverdue = "installment.overdue"
	EventTypeSweepCompleted     = "accrual.sweep_completed"
	EventTypeRuleActivated      = "penalty_rule.activated"
)

// Aggregate types
const (
	AggregateTypeLoan        = "loan"
	AggregateTypeInstallment = "installment"
	AggregateTypeRule        = "penalty_rule"
	AggregateTypeSweep       = "sweep"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// LoanCreatedEvent payload
type LoanCreatedEvent struct {
	LoanID       string `json:"loan_id"`
	BorrowerID   string `json:"borrower_id"`
	Principal    string `json:"principal"`
	RatePercent  string `json:"rate_percent"`
	Tenure       int    `json:"tenure"`
	Currency     string `json:"currency"`
	StartDate    string `json:"start_date"`
	Frequency    string `json:"frequency"`
	Installments int    `json:"installments"`
}

// InstallmentPaidEvent payload
type InstallmentPaidEvent struct {
	LoanID     string `json:"loan_id"`
	SequenceNo int    `json:"sequence_no"`
	PaidAmount string `json:"paid_amount"`
	PaidDate   string `json:"paid_date"`
	Status     string `json:"status"`
}

// SweepCompletedEvent payload
type SweepCompletedEvent struct {
	RuleID    string `json:"rule_id,omitempty"`
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
	SweptAt   string `json:"swept_at"`
}

// RuleActivatedEvent payload
type RuleActivatedEvent struct {
	RuleID    string `json:"rule_id"`
	RateType  string `json:"rate_type"`
	Rate      string `json:"rate"`
	GraceDays int    `json:"grace_days"`
}
