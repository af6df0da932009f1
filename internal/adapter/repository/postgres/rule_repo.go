package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// PenaltyRuleRepository implements usecase.PenaltyRuleRepository.
type PenaltyRuleRepository struct {
	pool *pgxpool.Pool
}

// NewPenaltyRuleRepository creates a new PenaltyRuleRepository.
func NewPenaltyRuleRepository(pool *pgxpool.Pool) *PenaltyRuleRepository {
	return &PenaltyRuleRepository{pool: pool}
}

// Create inserts a new penalty rule.
func (r *PenaltyRuleRepository) Create(ctx context.Context, rule *domain.PenaltyRule) error {
	query := `
		INSERT INTO penalty_rules (id, name, rate_type, rate, grace_days, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rule.ID,
		rule.Name,
		string(rule.RateType),
		decimalToNumeric(rule.Rate),
		rule.GraceDays,
		rule.Active,
		timeToPgTimestamptz(rule.CreatedAt),
		timeToPgTimestamptz(rule.UpdatedAt),
	)

	return err
}

// GetByID retrieves a rule by ID.
func (r *PenaltyRuleRepository) GetByID(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	query := `
		SELECT id, name, rate_type, rate, grace_days, active, created_at, updated_at
		FROM penalty_rules
		WHERE id = $1
	`

	rule, err := scanPenaltyRule(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}

	return rule, err
}

// GetActive retrieves the single active rule. No active rule is not an
// error here; accrual is simply switched off.
func (r *PenaltyRuleRepository) GetActive(ctx context.Context) (*domain.PenaltyRule, error) {
	query := `
		SELECT id, name, rate_type, rate, grace_days, active, created_at, updated_at
		FROM penalty_rules
		WHERE active
		ORDER BY updated_at DESC
		LIMIT 1
	`

	rule, err := scanPenaltyRule(r.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return rule, err
}

// SetActive flips a rule's active flag within a transaction.
func (r *PenaltyRuleRepository) SetActive(ctx context.Context, tx usecase.Transaction, id string, active bool, updatedAt time.Time) error {
	query := `
		UPDATE penalty_rules
		SET active = $2, updated_at = $3
		WHERE id = $1
	`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id, active, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}

	return nil
}

// DeactivateAll switches every active rule off within a transaction.
func (r *PenaltyRuleRepository) DeactivateAll(ctx context.Context, tx usecase.Transaction, updatedAt time.Time) error {
	query := `
		UPDATE penalty_rules
		SET active = false, updated_at = $1
		WHERE active
	`

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, query, timeToPgTimestamptz(updatedAt))

	return err
}

// List retrieves rules ordered by creation time, newest first.
func (r *PenaltyRuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.PenaltyRule, error) {
	query := `
		SELECT id, name, rate_type, rate, grace_days, active, created_at, updated_at
		FROM penalty_rules
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.PenaltyRule
	for rows.Next() {
		rule, err := scanPenaltyRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func scanPenaltyRule(row pgx.Row) (*domain.PenaltyRule, error) {
	var (
		rule      domain.PenaltyRule
		rateType  string
		rate      pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&rule.ID,
		&rule.Name,
		&rateType,
		&rate,
		&rule.GraceDays,
		&rule.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.RateType = domain.RateType(rateType)
	rule.Rate = numericToDecimal(rate)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
