package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
)

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, tx Transaction, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.LoanStatus, updatedAt time.Time) error
}

// InstallmentRepository defines data access for installments.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, installments []*domain.Installment) error
	GetByID(ctx context.Context, id string) (*domain.Installment, error)
	GetByLoanAndSeq(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error)
	GetByLoanAndSeqForUpdate(ctx context.Context, tx Transaction, loanID string, sequenceNo int) (*domain.Installment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error)
	// ListOutstanding returns installments that are not fully paid and whose
	// due date is on or before asOf, ordered by due date then sequence.
	ListOutstanding(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.Installment, error)
	RecordPayment(ctx context.Context, tx Transaction, id string, paidAmount decimal.Decimal, paidDate time.Time, status domain.InstallmentStatus, updatedAt time.Time) error
	UpdateAccrual(ctx context.Context, id string, overdueDays int, penalty decimal.Decimal, status domain.InstallmentStatus, updatedAt time.Time) error
}

// PenaltyRuleRepository defines data access for penalty rules.
type PenaltyRuleRepository interface {
	Create(ctx context.Context, rule *domain.PenaltyRule) error
	GetByID(ctx context.Context, id string) (*domain.PenaltyRule, error)
	// GetActive returns the single active rule, or (nil, nil) when penalty
	// accrual is switched off.
	GetActive(ctx context.Context) (*domain.PenaltyRule, error)
	SetActive(ctx context.Context, tx Transaction, id string, active bool, updatedAt time.Time) error
	DeactivateAll(ctx context.Context, tx Transaction, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.PenaltyRule, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation that failed with a transient error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
