package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

const installmentColumns = `id, loan_id, sequence_no, due_date, principal_due, interest_due, total_due, balance, paid_amount, paid_date, penalty_amount, overdue_days, status, created_at, updated_at`

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{pool: pool}
}

// CreateBatch inserts a full schedule within a transaction.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, inst := range installments {
		batch.Queue(query,
			inst.ID,
			inst.LoanID,
			inst.SequenceNo,
			timeToPgTimestamptz(inst.DueDate),
			decimalToNumeric(inst.PrincipalDue),
			decimalToNumeric(inst.InterestDue),
			decimalToNumeric(inst.TotalDue),
			decimalToNumeric(inst.Balance),
			decimalToNumeric(inst.PaidAmount),
			ptrToPgTimestamptz(inst.PaidDate),
			decimalToNumeric(inst.PenaltyAmount),
			inst.OverdueDays,
			string(inst.Status),
			timeToPgTimestamptz(inst.CreatedAt),
			timeToPgTimestamptz(inst.UpdatedAt),
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range installments {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// GetByID retrieves an installment by ID.
func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE id = $1
	`

	inst, err := scanInstallment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInstallmentNotFound
	}

	return inst, err
}

// GetByLoanAndSeq retrieves one installment by loan and sequence number.
func (r *InstallmentRepository) GetByLoanAndSeq(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1 AND sequence_no = $2
	`

	inst, err := scanInstallment(r.pool.QueryRow(ctx, query, loanID, sequenceNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInstallmentNotFound
	}

	return inst, err
}

// GetByLoanAndSeqForUpdate retrieves one installment with a row lock, for
// payment application.
func (r *InstallmentRepository) GetByLoanAndSeqForUpdate(ctx context.Context, tx usecase.Transaction, loanID string, sequenceNo int) (*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1 AND sequence_no = $2
		FOR UPDATE
	`

	pgxTx := tx.(*Tx).PgxTx()
	inst, err := scanInstallment(pgxTx.QueryRow(ctx, query, loanID, sequenceNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInstallmentNotFound
	}

	return inst, err
}

// ListByLoan retrieves the full schedule for a loan, in sequence order.
func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1
		ORDER BY sequence_no
	`

	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInstallments(rows)
}

// ListOutstanding retrieves unpaid installments due on or before asOf,
// ordered by due date then sequence so sweep pages are stable.
func (r *InstallmentRepository) ListOutstanding(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE status <> 'paid' AND due_date <= $1
		ORDER BY due_date, sequence_no
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(asOf), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInstallments(rows)
}

// RecordPayment persists a payment within a transaction.
func (r *InstallmentRepository) RecordPayment(ctx context.Context, tx usecase.Transaction, id string, paidAmount decimal.Decimal, paidDate time.Time, status domain.InstallmentStatus, updatedAt time.Time) error {
	query := `
		UPDATE installments
		SET paid_amount = $2, paid_date = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query,
		id,
		decimalToNumeric(paidAmount),
		timeToPgTimestamptz(paidDate),
		string(status),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

// UpdateAccrual persists sweep results for one installment.
func (r *InstallmentRepository) UpdateAccrual(ctx context.Context, id string, overdueDays int, penalty decimal.Decimal, status domain.InstallmentStatus, updatedAt time.Time) error {
	query := `
		UPDATE installments
		SET overdue_days = $2, penalty_amount = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		id,
		overdueDays,
		decimalToNumeric(penalty),
		string(status),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

func collectInstallments(rows pgx.Rows) ([]*domain.Installment, error) {
	var installments []*domain.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}

	return installments, rows.Err()
}

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	var (
		inst          domain.Installment
		dueDate       pgtype.Timestamptz
		principalDue  pgtype.Numeric
		interestDue   pgtype.Numeric
		totalDue      pgtype.Numeric
		balance       pgtype.Numeric
		paidAmount    pgtype.Numeric
		paidDate      pgtype.Timestamptz
		penaltyAmount pgtype.Numeric
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&inst.ID,
		&inst.LoanID,
		&inst.SequenceNo,
		&dueDate,
		&principalDue,
		&interestDue,
		&totalDue,
		&balance,
		&paidAmount,
		&paidDate,
		&penaltyAmount,
		&inst.OverdueDays,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.DueDate = dueDate.Time
	inst.PrincipalDue = numericToDecimal(principalDue)
	inst.InterestDue = numericToDecimal(interestDue)
	inst.TotalDue = numericToDecimal(totalDue)
	inst.Balance = numericToDecimal(balance)
	inst.PaidAmount = numericToDecimal(paidAmount)
	inst.PaidDate = pgTimestamptzToPtr(paidDate)
	inst.PenaltyAmount = numericToDecimal(penaltyAmount)
	inst.Status = domain.InstallmentStatus(status)
	inst.CreatedAt = createdAt.Time
	inst.UpdatedAt = updatedAt.Time

	return &inst, nil
}
