package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Loan, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.LoanStatus, updatedAt time.Time) error
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		loans: make(map[string]*domain.Loan),
	}
}

func (m *MockLoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loan, ok := m.loans[id]; ok {
		return loan, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var loans []*domain.Loan
	for _, loan := range m.loans {
		loans = append(loans, loan)
	}
	return loans, nil
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.LoanStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if loan, ok := m.loans[id]; ok {
		loan.Status = status
		loan.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrLoanNotFound
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository.
type MockInstallmentRepository struct {
	mu           sync.RWMutex
	installments map[string]*domain.Installment

	CreateBatchFunc              func(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error
	GetByIDFunc                  func(ctx context.Context, id string) (*domain.Installment, error)
	GetByLoanAndSeqFunc          func(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error)
	GetByLoanAndSeqForUpdateFunc func(ctx context.Context, tx usecase.Transaction, loanID string, sequenceNo int) (*domain.Installment, error)
	ListByLoanFunc               func(ctx context.Context, loanID string) ([]*domain.Installment, error)
	ListOutstandingFunc          func(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.Installment, error)
	RecordPaymentFunc            func(ctx context.Context, tx usecase.Transaction, id string, paidAmount decimal.Decimal, paidDate time.Time, status domain.InstallmentStatus, updatedAt time.Time) error
	UpdateAccrualFunc            func(ctx context.Context, id string, overdueDays int, penalty decimal.Decimal, status domain.InstallmentStatus, updatedAt time.Time) error
}

func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		installments: make(map[string]*domain.Installment),
	}
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, installments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inst := range installments {
		m.installments[inst.ID] = inst
	}
	return nil
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.installments[id]; ok {
		return inst, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) GetByLoanAndSeq(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
	if m.GetByLoanAndSeqFunc != nil {
		return m.GetByLoanAndSeqFunc(ctx, loanID, sequenceNo)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inst := range m.installments {
		if inst.LoanID == loanID && inst.SequenceNo == sequenceNo {
			return inst, nil
		}
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) GetByLoanAndSeqForUpdate(ctx context.Context, tx usecase.Transaction, loanID string, sequenceNo int) (*domain.Installment, error) {
	if m.GetByLoanAndSeqForUpdateFunc != nil {
		return m.GetByLoanAndSeqForUpdateFunc(ctx, tx, loanID, sequenceNo)
	}
	return m.GetByLoanAndSeq(ctx, loanID, sequenceNo)
}

func (m *MockInstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if m.ListByLoanFunc != nil {
		return m.ListByLoanFunc(ctx, loanID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var installments []*domain.Installment
	for _, inst := range m.installments {
		if inst.LoanID == loanID {
			installments = append(installments, inst)
		}
	}
	return installments, nil
}

func (m *MockInstallmentRepository) ListOutstanding(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.Installment, error) {
	if m.ListOutstandingFunc != nil {
		return m.ListOutstandingFunc(ctx, asOf, limit, offset)
	}
	return nil, nil
}

func (m *MockInstallmentRepository) RecordPayment(ctx context.Context, tx usecase.Transaction, id string, paidAmount decimal.Decimal, paidDate time.Time, status domain.InstallmentStatus, updatedAt time.Time) error {
	if m.RecordPaymentFunc != nil {
		return m.RecordPaymentFunc(ctx, tx, id, paidAmount, paidDate, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.installments[id]; ok {
		inst.PaidAmount = paidAmount
		inst.PaidDate = &paidDate
		inst.Status = status
		inst.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) UpdateAccrual(ctx context.Context, id string, overdueDays int, penalty decimal.Decimal, status domain.InstallmentStatus, updatedAt time.Time) error {
	if m.UpdateAccrualFunc != nil {
		return m.UpdateAccrualFunc(ctx, id, overdueDays, penalty, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.installments[id]; ok {
		inst.OverdueDays = overdueDays
		inst.PenaltyAmount = penalty
		inst.Status = status
		inst.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrInstallmentNotFound
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	Events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	return nil
}

// MockTransaction is a mock transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock transaction manager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock ID generator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockActiveRuleProvider is a mock implementation of ActiveRuleProvider.
type MockActiveRuleProvider struct {
	Rule  *domain.PenaltyRule
	Err   error
	Calls int

	GetActiveRuleFunc func(ctx context.Context) (*domain.PenaltyRule, error)
}

func NewMockActiveRuleProvider(rule *domain.PenaltyRule) *MockActiveRuleProvider {
	return &MockActiveRuleProvider{Rule: rule}
}

func (m *MockActiveRuleProvider) GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error) {
	m.Calls++
	if m.GetActiveRuleFunc != nil {
		return m.GetActiveRuleFunc(ctx)
	}
	return m.Rule, m.Err
}
