package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
)

// LoanUseCase handles loan origination and lookup.
type LoanUseCase struct {
	txManager  TransactionManager
	loanRepo   LoanRepository
	instRepo   InstallmentRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	instRepo InstallmentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:  txManager,
		loanRepo:   loanRepo,
		instRepo:   instRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
	}
}

// OriginateLoanInput represents input for originating a loan.
type OriginateLoanInput struct {
	BorrowerID  string
	Currency    string
	Principal   decimal.Decimal
	RatePercent decimal.Decimal
	Tenure      int
	StartDate   time.Time
	Frequency   string
}

// OriginateLoan validates the terms, generates the full repayment schedule,
// and persists the loan with all installments atomically. The schedule is
// generated exactly once, at origination.
func (uc *LoanUseCase) OriginateLoan(ctx context.Context, input OriginateLoanInput) (*domain.Loan, []*domain.Installment, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePrincipal(input.Principal); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidateTenure(input.Tenure); err != nil {
		return nil, nil, err
	}

	frequency, err := domain.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, nil, err
	}

	terms := domain.LoanTerms{
		Principal:   input.Principal,
		RatePercent: input.RatePercent,
		Tenure:      input.Tenure,
		StartDate:   input.StartDate,
		Frequency:   frequency,
	}

	installments, err := domain.GenerateSchedule(terms)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		ID:         uc.idGen.Generate(),
		BorrowerID: input.BorrowerID,
		Currency:   input.Currency,
		Terms:      terms,
		Status:     domain.LoanStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, inst := range installments {
		inst.ID = uc.idGen.Generate()
		inst.LoanID = loan.ID
		inst.CreatedAt = now
		inst.UpdatedAt = now
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.Create(ctx, tx, loan); err != nil {
		return nil, nil, err
	}

	if err := uc.instRepo.CreateBatch(ctx, tx, installments); err != nil {
		return nil, nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   loan.ID,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     domain.EventTypeLoanCreated,
		Payload: map[string]any{
			"loan_id":      loan.ID,
			"borrower_id":  loan.BorrowerID,
			"principal":    terms.Principal.String(),
			"rate_percent": terms.RatePercent.String(),
			"tenure":       terms.Tenure,
			"currency":     loan.Currency,
			"start_date":   terms.StartDate.Format(time.RFC3339),
			"frequency":    string(terms.Frequency),
			"installments": len(installments),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return loan, installments, nil
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// GetSchedule retrieves a loan with its full installment schedule.
func (uc *LoanUseCase) GetSchedule(ctx context.Context, loanID string) (*domain.Loan, []*domain.Installment, error) {
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}

	installments, err := uc.instRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}

	return loan, installments, nil
}

// ListLoansInput represents input for listing loans.
type ListLoansInput struct {
	Limit  int
	Offset int
}

// ListLoans lists loans with pagination.
func (uc *LoanUseCase) ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.loanRepo.List(ctx, limit, offset)
}

// CloseLoan marks a fully settled loan as closed.
func (uc *LoanUseCase) CloseLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	installments, err := uc.instRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if unpaid := domain.NextUnpaid(installments); unpaid != nil {
		return nil, domain.ErrLoanNotSettled
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.loanRepo.UpdateStatus(ctx, tx, loanID, domain.LoanStatusClosed, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   loanID,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     domain.EventTypeLoanClosed,
		Payload:       map[string]any{"loan_id": loanID},
		CreatedAt:     now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	loan.Status = domain.LoanStatusClosed
	loan.UpdatedAt = now

	return loan, nil
}
