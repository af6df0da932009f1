package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateType is the closed set of penalty rate types.
type RateType string

const (
	// RateFlat charges a fixed amount per chargeable day.
	RateFlat RateType = "flat"
	// RatePercentage charges a percentage of the outstanding amount per
	// chargeable day, without compounding.
	RatePercentage RateType = "percentage"
	// RateDailyInterest charges a fixed amount per chargeable day, like
	// RateFlat. It exists as its own variant so rules configured with the
	// legacy daily-interest type keep their meaning explicitly.
	RateDailyInterest RateType = "daily_interest"
)

// ParseRateType parses a rate type string. Unknown values are rejected
// rather than falling through to a default.
func ParseRateType(s string) (RateType, error) {
	switch RateType(s) {
	case RateFlat, RatePercentage, RateDailyInterest:
		return RateType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRateType, s)
	}
}

// PenaltyRule configures how overdue penalties accrue.
type PenaltyRule struct {
	ID        string
	Name      string
	RateType  RateType
	Rate      decimal.Decimal
	GraceDays int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates a penalty rule.
func (r *PenaltyRule) Validate() error {
	if _, err := ParseRateType(string(r.RateType)); err != nil {
		return err
	}

	if r.Rate.IsNegative() {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidPenaltyRule)
	}

	if r.GraceDays < 0 {
		return fmt.Errorf("%w: grace days must not be negative", ErrInvalidPenaltyRule)
	}

	return nil
}

// Accrual is the result of one penalty computation.
type Accrual struct {
	OverdueDays int
	Penalty     decimal.Decimal
}

// zeroAccrual is returned whenever no penalty applies.
func zeroAccrual() Accrual {
	return Accrual{OverdueDays: 0, Penalty: decimal.Zero}
}

// ComputePenalty computes the overdue penalty for an installment against a
// rule as of today. It is pure: the caller persists the result.
//
// A nil or inactive rule means penalty accrual is switched off and yields a
// zero accrual, as does a fully paid installment or any lateness still inside
// the grace period. Past grace, each chargeable day accrues against the same
// outstanding base; penalties never compound.
func ComputePenalty(inst *Installment, rule *PenaltyRule, today time.Time) (Accrual, error) {
	if err := inst.Validate(); err != nil {
		return Accrual{}, err
	}

	if rule == nil || !rule.Active || inst.IsPaid() {
		return zeroAccrual(), nil
	}

	overdueDays := daysBetween(inst.DueDate, today)
	if overdueDays <= rule.GraceDays {
		return zeroAccrual(), nil
	}

	chargeableDays := overdueDays - rule.GraceDays
	days := decimal.NewFromInt(int64(chargeableDays))

	var penalty decimal.Decimal
	switch rule.RateType {
	case RatePercentage:
		penalty = inst.Outstanding().Mul(rule.Rate).Div(oneHundred).Mul(days)
	case RateFlat, RateDailyInterest:
		penalty = rule.Rate.Mul(days)
	default:
		return Accrual{}, fmt.Errorf("%w: %q", ErrInvalidRateType, rule.RateType)
	}

	return Accrual{
		OverdueDays: chargeableDays,
		Penalty:     penalty.Round(2),
	}, nil
}
