package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name      string
		total     int64
		received  int64
		remaining int64
		overpaid  int64
	}{
		{"partial payment leaves remainder", 1000, 600, 400, 0},
		{"exact payment clears both", 1000, 1000, 0, 0},
		{"overpayment records surplus", 1000, 1200, 0, 200},
		{"nothing received", 1000, 0, 1000, 0},
		{"zero transaction", 0, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remaining, overpaid := Derive(decimal.NewFromInt(tc.total), decimal.NewFromInt(tc.received))

			assert.True(t, remaining.Equal(decimal.NewFromInt(tc.remaining)), "remaining = %s", remaining)
			assert.True(t, overpaid.Equal(decimal.NewFromInt(tc.overpaid)), "overpaid = %s", overpaid)
			// never both positive
			assert.False(t, remaining.IsPositive() && overpaid.IsPositive())
		})
	}
}

func TestNewLedgerEntry(t *testing.T) {
	businessDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("derives amounts on creation", func(t *testing.T) {
		entry, err := NewLedgerEntry(uuid.New(), uuid.New(), "Sale on 2024-06-01", decimal.NewFromInt(1000), decimal.NewFromInt(600), businessDate)

		require.NoError(t, err)
		assert.True(t, entry.RemainingAmount.Equal(decimal.NewFromInt(400)))
		assert.True(t, entry.OverpaidAmount.IsZero())
		assert.Equal(t, businessDate, entry.CreatedAt)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.New(), uuid.New(), "", decimal.NewFromInt(-1), decimal.Zero, businessDate)
		require.Error(t, err)
	})

	t.Run("rejects nil entity", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.Nil, uuid.New(), "", decimal.NewFromInt(100), decimal.Zero, businessDate)
		require.Error(t, err)
	})

	t.Run("rejects nil transaction", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.New(), uuid.Nil, "", decimal.NewFromInt(100), decimal.Zero, businessDate)
		require.Error(t, err)
	})
}

func TestLedgerEntry_Apply(t *testing.T) {
	businessDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	entry, err := NewLedgerEntry(uuid.New(), uuid.New(), "Purchase on 2024-06-01", decimal.NewFromInt(1000), decimal.NewFromInt(600), businessDate)
	require.NoError(t, err)

	t.Run("re-derives on update", func(t *testing.T) {
		require.NoError(t, entry.Apply(decimal.NewFromInt(1000), decimal.NewFromInt(1100), ""))

		assert.True(t, entry.RemainingAmount.IsZero())
		assert.True(t, entry.OverpaidAmount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "Purchase on 2024-06-01", entry.Description)
	})

	t.Run("deleting all items zeroes the remainder", func(t *testing.T) {
		require.NoError(t, entry.Apply(decimal.Zero, decimal.Zero, ""))

		assert.True(t, entry.RemainingAmount.IsZero())
		assert.True(t, entry.OverpaidAmount.IsZero())
	})
}
