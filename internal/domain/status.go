package domain

import "time"

// DeriveStatus recomputes an installment's status from its current amounts,
// the active penalty rule, and today's date. The stored status field is only
// a cache of this derivation.
//
// Priority order: paid beats overdue beats partial beats pending. An overdue
// installment that gets fully paid becomes paid; lateness is a flag layered
// on payment progress, not a terminal state.
func DeriveStatus(inst *Installment, rule *PenaltyRule, today time.Time) (InstallmentStatus, error) {
	if err := inst.Validate(); err != nil {
		return "", err
	}

	if inst.IsPaid() {
		return StatusPaid, nil
	}

	accrual, err := ComputePenalty(inst, rule, today)
	if err != nil {
		return "", err
	}

	if accrual.OverdueDays > 0 {
		return StatusOverdue, nil
	}

	if inst.PaidAmount.IsPositive() {
		return StatusPartial, nil
	}

	return StatusPending, nil
}
