package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID          string          `json:"id"`
	BorrowerID  string          `json:"borrower_id"`
	Currency    string          `json:"currency"`
	Principal   decimal.Decimal `json:"principal"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Tenure      int             `json:"tenure"`
	StartDate   time.Time       `json:"start_date"`
	Frequency   string          `json:"frequency"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:          l.ID,
		BorrowerID:  l.BorrowerID,
		Currency:    l.Currency,
		Principal:   l.Terms.Principal,
		RatePercent: l.Terms.RatePercent,
		Tenure:      l.Terms.Tenure,
		StartDate:   l.Terms.StartDate,
		Frequency:   string(l.Terms.Frequency),
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID            string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	SequenceNo    int             `json:"sequence_no"`
	DueDate       time.Time       `json:"due_date"`
	PrincipalDue  decimal.Decimal `json:"principal_due"`
	InterestDue   decimal.Decimal `json:"interest_due"`
	TotalDue      decimal.Decimal `json:"total_due"`
	Balance       decimal.Decimal `json:"balance"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidDate      *time.Time      `json:"paid_date"`
	PenaltyAmount decimal.Decimal `json:"penalty_amount"`
	OverdueDays   int             `json:"overdue_days"`
	Status        string          `json:"status"`
}

// InstallmentFromDomain converts a domain installment to a response.
func InstallmentFromDomain(inst *domain.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:            inst.ID,
		LoanID:        inst.LoanID,
		SequenceNo:    inst.SequenceNo,
		DueDate:       inst.DueDate,
		PrincipalDue:  inst.PrincipalDue,
		InterestDue:   inst.InterestDue,
		TotalDue:      inst.TotalDue,
		Balance:       inst.Balance,
		PaidAmount:    inst.PaidAmount,
		PaidDate:      inst.PaidDate,
		PenaltyAmount: inst.PenaltyAmount,
		OverdueDays:   inst.OverdueDays,
		Status:        string(inst.Status),
	}
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, inst := range installments {
		result[i] = InstallmentFromDomain(inst)
	}
	return result
}

// ScheduleResponse represents a loan with its full schedule.
type ScheduleResponse struct {
	Loan         *LoanResponse          `json:"loan"`
	Installments []*InstallmentResponse `json:"installments"`
}

// ListLoansResponse represents a paginated list of loans.
type ListLoansResponse struct {
	Loans []*LoanResponse `json:"loans"`
	Total int64           `json:"total"`
}

// RuleResponse represents a penalty rule in API responses.
type RuleResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	RateType  string          `json:"rate_type"`
	Rate      decimal.Decimal `json:"rate"`
	GraceDays int             `json:"grace_days"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RuleFromDomain converts a domain penalty rule to a response.
func RuleFromDomain(r *domain.PenaltyRule) *RuleResponse {
	return &RuleResponse{
		ID:        r.ID,
		Name:      r.Name,
		RateType:  string(r.RateType),
		Rate:      r.Rate,
		GraceDays: r.GraceDays,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RulesFromDomain converts domain penalty rules to responses.
func RulesFromDomain(rules []*domain.PenaltyRule) []*RuleResponse {
	result := make([]*RuleResponse, len(rules))
	for i, r := range rules {
		result[i] = RuleFromDomain(r)
	}
	return result
}

// ListRulesResponse represents a paginated list of rules.
type ListRulesResponse struct {
	Rules []*RuleResponse `json:"rules"`
	Total int64           `json:"total"`
}

// SweepFailureResponse represents one failed installment in a sweep.
type SweepFailureResponse struct {
	InstallmentID string `json:"installment_id"`
	LoanID        string `json:"loan_id"`
	SequenceNo    int    `json:"sequence_no"`
	Error         string `json:"error"`
}

// SweepReportResponse represents the outcome of one accrual sweep.
type SweepReportResponse struct {
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	RuleID     string                  `json:"rule_id,omitempty"`
	Processed  int                     `json:"processed"`
	Updated    int                     `json:"updated"`
	Failures   []*SweepFailureResponse `json:"failures,omitempty"`
}

// SweepReportFromUseCase converts a sweep report to a response.
func SweepReportFromUseCase(report *usecase.SweepReport) *SweepReportResponse {
	resp := &SweepReportResponse{
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		RuleID:     report.RuleID,
		Processed:  report.Processed,
		Updated:    report.Updated,
	}

	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, &SweepFailureResponse{
			InstallmentID: f.InstallmentID,
			LoanID:        f.LoanID,
			SequenceNo:    f.SequenceNo,
			Error:         f.Err.Error(),
		})
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
