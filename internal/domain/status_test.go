package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDeriveStatus_PriorityOrder(t *testing.T) {
	today := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	rule := flatRule("100", 3)

	tests := []struct {
		name        string
		daysOverdue int
		totalDue    string
		paid        string
		want        InstallmentStatus
	}{
		{"untouched and not due", -20, "12400", "0", StatusPending},
		{"untouched inside grace", 2, "12400", "0", StatusPending},
		{"partially paid not due", -20, "12400", "5000", StatusPartial},
		{"partially paid inside grace", 1, "12400", "5000", StatusPartial},
		{"unpaid past grace", 10, "12400", "0", StatusOverdue},
		{"partially paid past grace", 10, "12400", "5000", StatusOverdue},
		{"fully paid", -20, "12400", "12400", StatusPaid},
		{"fully paid while overdue", 10, "12400", "12400", StatusPaid},
		{"overpaid", 10, "12400", "13000", StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := today.AddDate(0, 0, -tt.daysOverdue)
			inst := testInstallment(due, tt.totalDue, tt.paid)

			status, err := DeriveStatus(inst, rule, today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, status)
			}
		})
	}
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	today := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	rule := percentageRule("1.0", 3)
	inst := testInstallment(today.AddDate(0, 0, -10), "12400", "5000")

	first, err := DeriveStatus(inst, rule, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := DeriveStatus(inst, rule, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("derivation not deterministic: %s vs %s", first, second)
	}
}

func TestDeriveStatus_NoRuleNeverOverdue(t *testing.T) {
	today := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	inst := testInstallment(today.AddDate(0, 0, -30), "500", "0")

	status, err := DeriveStatus(inst, nil, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Without an active rule there is no grace boundary to cross, so the
	// installment stays pending rather than overdue.
	if status != StatusPending {
		t.Errorf("expected pending without a rule, got %s", status)
	}
}

func TestDeriveStatus_InvalidState(t *testing.T) {
	today := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	inst := testInstallment(today, "500", "0")
	inst.PaidAmount = decimal.NewFromInt(-10)

	_, err := DeriveStatus(inst, nil, today)
	if !errors.Is(err, ErrInvalidInstallmentState) {
		t.Errorf("expected ErrInvalidInstallmentState, got %v", err)
	}
}
