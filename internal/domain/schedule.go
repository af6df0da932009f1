package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// GenerateSchedule builds the full repayment schedule for the given terms.
//
// The split is equal-principal with flat-rate interest: every installment
// carries principal/tenure and interest of principal * rate/100, each rounded
// to 2 decimal places per installment. The rounding remainder on the final
// installment is deliberately not corrected, so the sum of principal dues may
// drift from the principal by up to one cent per installment.
func GenerateSchedule(terms LoanTerms) ([]*Installment, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	tenure := decimal.NewFromInt(int64(terms.Tenure))
	principalPer := terms.Principal.Div(tenure).Round(2)
	interestPer := terms.Principal.Mul(terms.RatePercent).Div(oneHundred).Round(2)
	totalPer := principalPer.Add(interestPer)

	installments := make([]*Installment, 0, terms.Tenure)
	for i := 1; i <= terms.Tenure; i++ {
		seq := decimal.NewFromInt(int64(i))

		balance := terms.Principal.Sub(principalPer.Mul(seq))
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		installments = append(installments, &Installment{
			SequenceNo:    i,
			DueDate:       terms.Frequency.AddPeriods(terms.StartDate, i),
			PrincipalDue:  principalPer,
			InterestDue:   interestPer,
			TotalDue:      totalPer,
			Balance:       balance,
			PaidAmount:    decimal.Zero,
			PenaltyAmount: decimal.Zero,
			Status:        StatusPending,
		})
	}

	return installments, nil
}

// ScheduleTotal returns the sum of total dues across a schedule.
func ScheduleTotal(installments []*Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.TotalDue)
	}

	return total
}

// NextUnpaid returns the first installment that is not fully paid, or nil.
func NextUnpaid(installments []*Installment) *Installment {
	for _, inst := range installments {
		if !inst.IsPaid() {
			return inst
		}
	}

	return nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed whole-day difference to - from.
func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}
