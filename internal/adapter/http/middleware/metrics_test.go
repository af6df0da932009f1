package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"loan by id", "/api/v1/loans/01JD3X", "/api/v1/loans/:id"},
		{"loan schedule", "/api/v1/loans/01JD3X/schedule", "/api/v1/loans/:id/schedule"},
		{"loan payments", "/api/v1/loans/01JD3X/payments", "/api/v1/loans/:id/payments"},
		{"installment", "/api/v1/loans/01JD3X/installments/3", "/api/v1/loans/:id/installments/3"},
		{"rule by id", "/api/v1/rules/01JD3X", "/api/v1/rules/:id"},
		{"active rule kept literal", "/api/v1/rules/active", "/api/v1/rules/active"},
		{"collection untouched", "/api/v1/loans", "/api/v1/loans"},
		{"sweeps untouched", "/api/v1/sweeps", "/api/v1/sweeps"},
		{"health untouched", "/health", "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
