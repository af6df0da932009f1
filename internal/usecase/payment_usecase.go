package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
)

// PaymentUseCase records installment payments and refreshes derived status.
type PaymentUseCase struct {
	txManager TransactionManager
	instRepo  InstallmentRepository
	ruleUC    ActiveRuleProvider
	outbox    OutboxRepository
	idGen     IDGenerator
	retrier   Retrier
}

// ActiveRuleProvider resolves the currently active penalty rule. The payment
// flow needs it only to re-derive status; the derivation itself never looks
// the rule up.
type ActiveRuleProvider interface {
	GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error)
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	instRepo InstallmentRepository,
	ruleUC ActiveRuleProvider,
	outbox OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager: txManager,
		instRepo:  instRepo,
		ruleUC:    ruleUC,
		outbox:    outbox,
		idGen:     idGen,
		retrier:   retrier,
	}
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	LoanID     string
	SequenceNo int
	Amount     decimal.Decimal
	PaidAt     time.Time
}

// RecordPayment applies a payment to an installment and re-derives its
// status. Payments beyond the installment's total due are rejected.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Installment, error) {
	if err := domain.ValidatePaymentAmount(input.Amount); err != nil {
		return nil, err
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	// Resolve the active rule before opening the transaction so the lock is
	// held as briefly as possible.
	rule, err := uc.ruleUC.GetActiveRule(ctx)
	if err != nil {
		return nil, err
	}

	var inst *domain.Installment
	apply := func() error {
		var err error
		inst, err = uc.applyPayment(ctx, input, rule, paidAt)
		return err
	}

	// Row locks on installments can deadlock under concurrent payments, so
	// the whole transaction is retried on transient errors.
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, apply)
	} else {
		err = apply()
	}
	if err != nil {
		return nil, err
	}

	return inst, nil
}

func (uc *PaymentUseCase) applyPayment(ctx context.Context, input RecordPaymentInput, rule *domain.PenaltyRule, paidAt time.Time) (*domain.Installment, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inst, err := uc.instRepo.GetByLoanAndSeqForUpdate(ctx, tx, input.LoanID, input.SequenceNo)
	if err != nil {
		return nil, err
	}

	newPaid := inst.PaidAmount.Add(input.Amount)
	if newPaid.GreaterThan(inst.TotalDue) {
		return nil, domain.ErrOverpayment
	}

	inst.PaidAmount = newPaid
	inst.PaidDate = &paidAt

	status, err := domain.DeriveStatus(inst, rule, paidAt)
	if err != nil {
		return nil, err
	}
	inst.Status = status

	now := time.Now().UTC()
	if err := uc.instRepo.RecordPayment(ctx, tx, inst.ID, newPaid, paidAt, status, now); err != nil {
		return nil, err
	}

	if status == domain.StatusPaid {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   inst.ID,
			AggregateType: domain.AggregateTypeInstallment,
			EventType:     domain.EventTypeInstallmentPaid,
			Payload: map[string]any{
				"loan_id":     input.LoanID,
				"sequence_no": input.SequenceNo,
				"paid_amount": newPaid.String(),
				"paid_date":   paidAt.Format(time.RFC3339),
				"status":      string(status),
			},
			CreatedAt: now,
		}

		if err := uc.outbox.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	inst.UpdatedAt = now

	return inst, nil
}

// GetInstallment retrieves one installment by loan and sequence number.
func (uc *PaymentUseCase) GetInstallment(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
	return uc.instRepo.GetByLoanAndSeq(ctx, loanID, sequenceNo)
}
