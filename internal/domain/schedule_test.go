package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func monthlyTerms(principal string, ratePercent string, tenure int, start time.Time) LoanTerms {
	return LoanTerms{
		Principal:   decimal.RequireFromString(principal),
		RatePercent: decimal.RequireFromString(ratePercent),
		Tenure:      tenure,
		StartDate:   start,
		Frequency:   FrequencyMonthly,
	}
}

func TestGenerateSchedule_ReferenceScenario(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := GenerateSchedule(monthlyTerms("120000", "2", 12, start))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(schedule))
	}

	first := schedule[0]
	if !first.DueDate.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected first due date 2026-02-01, got %v", first.DueDate)
	}
	if !first.PrincipalDue.Equal(decimal.RequireFromString("10000")) {
		t.Errorf("expected principal due 10000, got %s", first.PrincipalDue)
	}
	if !first.InterestDue.Equal(decimal.RequireFromString("2400")) {
		t.Errorf("expected interest due 2400, got %s", first.InterestDue)
	}
	if !first.TotalDue.Equal(decimal.RequireFromString("12400")) {
		t.Errorf("expected total due 12400, got %s", first.TotalDue)
	}

	last := schedule[11]
	if !last.DueDate.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected last due date 2027-01-01, got %v", last.DueDate)
	}
	if !last.InterestDue.Equal(first.InterestDue) {
		t.Errorf("expected identical interest on last installment, got %s", last.InterestDue)
	}
	if !last.Balance.IsZero() {
		t.Errorf("expected zero balance on last installment, got %s", last.Balance)
	}
}

func TestGenerateSchedule_PrincipalSumWithinRoundingBound(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		tenure    int
	}{
		{"evenly divisible", "120000", 12},
		{"indivisible small", "100", 3},
		{"indivisible large", "99999.99", 7},
		{"single installment", "5000", 1},
		{"odd cents", "1000.01", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
			terms := monthlyTerms(tt.principal, "1.5", tt.tenure, start)

			schedule, err := GenerateSchedule(terms)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sum := decimal.Zero
			for _, inst := range schedule {
				sum = sum.Add(inst.PrincipalDue)
			}

			// Accumulated rounding bound: one cent per installment.
			bound := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(tt.tenure)))
			drift := sum.Sub(terms.Principal).Abs()
			if drift.GreaterThan(bound) {
				t.Errorf("principal sum %s drifts %s from %s, beyond bound %s",
					sum, drift, terms.Principal, bound)
			}
		})
	}
}

func TestGenerateSchedule_FlatInterestEveryPeriod(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	terms := monthlyTerms("77777.77", "2.25", 9, start)

	schedule, err := GenerateSchedule(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := terms.Principal.Mul(terms.RatePercent).Div(decimal.NewFromInt(100)).Round(2)
	for _, inst := range schedule {
		if !inst.InterestDue.Equal(want) {
			t.Errorf("installment %d: expected interest %s, got %s", inst.SequenceNo, want, inst.InterestDue)
		}
		if !inst.TotalDue.Equal(inst.PrincipalDue.Add(inst.InterestDue)) {
			t.Errorf("installment %d: total due %s != principal %s + interest %s",
				inst.SequenceNo, inst.TotalDue, inst.PrincipalDue, inst.InterestDue)
		}
	}
}

func TestGenerateSchedule_DueDateSpacing(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		start     time.Time
	}{
		{"monthly", FrequencyMonthly, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"weekly", FrequencyWeekly, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"daily", FrequencyDaily, time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := LoanTerms{
				Principal:   decimal.NewFromInt(12000),
				RatePercent: decimal.NewFromInt(1),
				Tenure:      6,
				StartDate:   tt.start,
				Frequency:   tt.frequency,
			}

			schedule, err := GenerateSchedule(terms)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i, inst := range schedule {
				want := tt.frequency.AddPeriods(tt.start, i+1)
				if !inst.DueDate.Equal(want) {
					t.Errorf("installment %d: expected due %v, got %v", inst.SequenceNo, want, inst.DueDate)
				}
				if i > 0 && !inst.DueDate.After(schedule[i-1].DueDate) {
					t.Errorf("installment %d: due dates not strictly increasing", inst.SequenceNo)
				}
			}
		})
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	start := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	terms := monthlyTerms("45678.90", "1.75", 18, start)

	first, err := GenerateSchedule(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := GenerateSchedule(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("schedules differ in length: %d vs %d", len(first), len(second))
	}

	for i := range first {
		a, b := first[i], second[i]
		if a.SequenceNo != b.SequenceNo || !a.DueDate.Equal(b.DueDate) ||
			!a.PrincipalDue.Equal(b.PrincipalDue) || !a.InterestDue.Equal(b.InterestDue) ||
			!a.TotalDue.Equal(b.TotalDue) || !a.Balance.Equal(b.Balance) {
			t.Errorf("installment %d differs between runs", a.SequenceNo)
		}
	}
}

func TestGenerateSchedule_InvalidTerms(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{"zero principal", monthlyTerms("0", "2", 12, start)},
		{"negative principal", monthlyTerms("-1000", "2", 12, start)},
		{"zero tenure", monthlyTerms("1000", "2", 0, start)},
		{"negative rate", monthlyTerms("1000", "-1", 12, start)},
		{"zero start date", monthlyTerms("1000", "2", 12, time.Time{})},
		{
			"unknown frequency",
			LoanTerms{
				Principal:   decimal.NewFromInt(1000),
				RatePercent: decimal.NewFromInt(2),
				Tenure:      12,
				StartDate:   start,
				Frequency:   Frequency("fortnightly"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := GenerateSchedule(tt.terms)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if schedule != nil {
				t.Errorf("expected no partial schedule, got %d installments", len(schedule))
			}
		})
	}
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := GenerateSchedule(monthlyTerms("6000", "0", 6, start))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, inst := range schedule {
		if !inst.InterestDue.IsZero() {
			t.Errorf("installment %d: expected zero interest, got %s", inst.SequenceNo, inst.InterestDue)
		}
		if !inst.TotalDue.Equal(inst.PrincipalDue) {
			t.Errorf("installment %d: total due should equal principal due", inst.SequenceNo)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			"same day",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC),
			0,
		},
		{
			"ten days later",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			10,
		},
		{
			"due date in the future",
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			-5,
		},
		{
			"across month boundary",
			time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC),
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}
