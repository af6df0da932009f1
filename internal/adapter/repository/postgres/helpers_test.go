package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	tests := []string{"0", "1", "12400.00", "-250.75", "0.0001", "99999999.99"}

	for _, s := range tests {
		d := decimal.RequireFromString(s)

		n := decimalToNumeric(d)
		require.True(t, n.Valid, "numeric from %s should be valid", s)

		back := numericToDecimal(n)
		assert.True(t, d.Equal(back), "round trip of %s gave %s", d, back)
	}
}

func TestNumericToDecimalInvalid(t *testing.T) {
	got := numericToDecimal(pgtype.Numeric{})
	assert.True(t, got.IsZero(), "invalid numeric should map to zero, got %s", got)
}

func TestTimestamptzPtrHelpers(t *testing.T) {
	require.False(t, ptrToPgTimestamptz(nil).Valid)
	require.Nil(t, pgTimestamptzToPtr(ptrToPgTimestamptz(nil)))

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	ts := ptrToPgTimestamptz(&now)
	require.True(t, ts.Valid)

	back := pgTimestamptzToPtr(ts)
	require.NotNil(t, back)
	assert.True(t, now.Equal(*back))
}
