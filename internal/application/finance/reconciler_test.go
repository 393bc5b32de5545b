package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/shared"
)

// memoryLedger keeps entries keyed by their parent transaction, the
// same uniqueness the persistence layer enforces.
type memoryLedger struct {
	entries map[uuid.UUID]*finance.LedgerEntry
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: make(map[uuid.UUID]*finance.LedgerEntry)}
}

func (l *memoryLedger) FindByID(ctx context.Context, id uuid.UUID) (*finance.LedgerEntry, error) {
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (l *memoryLedger) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.LedgerEntry, error) {
	entry, ok := l.entries[transactionID]
	if !ok || !entry.IsActive {
		return nil, shared.ErrNotFound
	}
	return entry, nil
}

func (l *memoryLedger) FindByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	var entries []finance.LedgerEntry
	for _, entry := range l.entries {
		if entry.EntityID == entityID {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (l *memoryLedger) FindAllBetween(ctx context.Context, dateRange shared.DateRange, filter shared.Filter) ([]finance.LedgerEntry, int64, error) {
	var entries []finance.LedgerEntry
	for _, entry := range l.entries {
		entries = append(entries, *entry)
	}
	return entries, int64(len(entries)), nil
}

func (l *memoryLedger) Save(ctx context.Context, entry *finance.LedgerEntry) error {
	l.entries[entry.TransactionID] = entry
	return nil
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("same-day transactions for one entity keep separate entries", func(t *testing.T) {
		ledger := newMemoryLedger()
		customer := uuid.New()
		firstSale := uuid.New()
		secondSale := uuid.New()

		first, err := Reconcile(ctx, ledger, customer, firstSale, "Sale to Rahim Traders", decimal.NewFromInt(1000), decimal.NewFromInt(600), businessDate)
		require.NoError(t, err)
		second, err := Reconcile(ctx, ledger, customer, secondSale, "Sale to Rahim Traders", decimal.NewFromInt(500), decimal.NewFromInt(500), businessDate)
		require.NoError(t, err)

		require.Len(t, ledger.entries, 2)
		assert.NotEqual(t, first.ID, second.ID)
		assert.True(t, first.RemainingAmount.Equal(decimal.NewFromInt(400)), "remaining = %s", first.RemainingAmount)
		assert.True(t, second.RemainingAmount.IsZero())

		entries, err := ledger.FindByEntity(ctx, customer, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("re-derives the entry of the same transaction in place", func(t *testing.T) {
		ledger := newMemoryLedger()
		supplier := uuid.New()
		purchase := uuid.New()

		_, err := Reconcile(ctx, ledger, supplier, purchase, "Purchase from Volta Distribution", decimal.NewFromInt(1000), decimal.Zero, businessDate)
		require.NoError(t, err)
		entry, err := Reconcile(ctx, ledger, supplier, purchase, "Purchase from Volta Distribution", decimal.NewFromInt(1000), decimal.NewFromInt(1000), businessDate)
		require.NoError(t, err)

		require.Len(t, ledger.entries, 1)
		assert.True(t, entry.RemainingAmount.IsZero())
	})

	t.Run("moves the entry when the business date changes", func(t *testing.T) {
		ledger := newMemoryLedger()
		supplier := uuid.New()
		purchase := uuid.New()
		newDate := businessDate.AddDate(0, 0, 3)

		_, err := Reconcile(ctx, ledger, supplier, purchase, "Purchase from Volta Distribution", decimal.NewFromInt(800), decimal.NewFromInt(800), businessDate)
		require.NoError(t, err)
		entry, err := Reconcile(ctx, ledger, supplier, purchase, "Purchase from Volta Distribution", decimal.NewFromInt(800), decimal.NewFromInt(800), newDate)
		require.NoError(t, err)

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, newDate, entry.BusinessDate)
	})

	t.Run("rejects a nil transaction", func(t *testing.T) {
		ledger := newMemoryLedger()

		_, err := Reconcile(ctx, ledger, uuid.New(), uuid.Nil, "", decimal.NewFromInt(100), decimal.Zero, businessDate)
		require.Error(t, err)
		assert.Empty(t, ledger.entries)
	})
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("retires only the entry of its own transaction", func(t *testing.T) {
		ledger := newMemoryLedger()
		customer := uuid.New()
		firstSale := uuid.New()
		secondSale := uuid.New()

		first, err := Reconcile(ctx, ledger, customer, firstSale, "Sale to Rahim Traders", decimal.NewFromInt(1000), decimal.NewFromInt(600), businessDate)
		require.NoError(t, err)
		second, err := Reconcile(ctx, ledger, customer, secondSale, "Sale to Rahim Traders", decimal.NewFromInt(500), decimal.NewFromInt(500), businessDate)
		require.NoError(t, err)

		require.NoError(t, Deactivate(ctx, ledger, secondSale, time.Now()))

		assert.True(t, first.IsActive)
		assert.False(t, second.IsActive)
		assert.True(t, first.RemainingAmount.Equal(decimal.NewFromInt(400)))
	})

	t.Run("tolerates a transaction without an entry", func(t *testing.T) {
		ledger := newMemoryLedger()
		require.NoError(t, Deactivate(ctx, ledger, uuid.New(), time.Now()))
	})
}
