package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshop/backend/internal/domain/shared"
)

func newTestBatch(t *testing.T, quantity int64) *Batch {
	t.Helper()
	batch, err := NewBatch(
		uuid.New(), uuid.New(), quantity,
		decimal.NewFromInt(100), decimal.NewFromInt(130),
		"12345202406011",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return batch
}

func TestNewBatch(t *testing.T) {
	t.Run("creates batch with business date as created at", func(t *testing.T) {
		businessDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		batch, err := NewBatch(uuid.New(), uuid.New(), 5, decimal.NewFromInt(100), decimal.NewFromInt(130), "12345202406011", businessDate)

		require.NoError(t, err)
		assert.Equal(t, int64(5), batch.InitialQuantity)
		assert.Zero(t, batch.SoldQuantity)
		assert.Equal(t, businessDate, batch.CreatedAt)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewBatch(uuid.New(), uuid.New(), 0, decimal.NewFromInt(100), decimal.NewFromInt(130), "b", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewBatch(uuid.New(), uuid.New(), 5, decimal.NewFromInt(-1), decimal.NewFromInt(130), "b", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects empty barcode", func(t *testing.T) {
		_, err := NewBatch(uuid.New(), uuid.New(), 5, decimal.NewFromInt(100), decimal.NewFromInt(130), "", time.Now())
		require.Error(t, err)
	})
}

func TestBatch_Consume(t *testing.T) {
	t.Run("consumes available stock", func(t *testing.T) {
		batch := newTestBatch(t, 5)

		require.NoError(t, batch.Consume(3))
		assert.Equal(t, int64(3), batch.SoldQuantity)
		assert.Equal(t, int64(2), batch.Available())
	})

	t.Run("rejects consumption past initial quantity", func(t *testing.T) {
		batch := newTestBatch(t, 5)
		require.NoError(t, batch.Consume(3))

		err := batch.Consume(3)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(3), batch.SoldQuantity)
	})

	t.Run("rejects consumption of a deleted batch", func(t *testing.T) {
		batch := newTestBatch(t, 5)
		require.NoError(t, batch.Delete(time.Now()))

		require.Error(t, batch.Consume(1))
	})
}

func TestBatch_Release(t *testing.T) {
	batch := newTestBatch(t, 5)
	require.NoError(t, batch.Consume(3))

	t.Run("releases sold stock", func(t *testing.T) {
		require.NoError(t, batch.Release(3))
		assert.Zero(t, batch.SoldQuantity)
	})

	t.Run("rejects release beyond sold quantity", func(t *testing.T) {
		require.Error(t, batch.Release(1))
	})
}

func TestBatch_UpdateCommercial(t *testing.T) {
	t.Run("updates an untouched batch", func(t *testing.T) {
		batch := newTestBatch(t, 5)
		productID := uuid.New()

		require.NoError(t, batch.UpdateCommercial(productID, 8, decimal.NewFromInt(90), decimal.NewFromInt(120)))
		assert.Equal(t, int64(8), batch.InitialQuantity)
		assert.Equal(t, productID, batch.ProductID)
		assert.True(t, batch.LineTotal().Equal(decimal.NewFromInt(720)))
	})

	t.Run("locked once units are sold", func(t *testing.T) {
		batch := newTestBatch(t, 5)
		require.NoError(t, batch.Consume(1))

		err := batch.UpdateCommercial(uuid.New(), 8, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.Error(t, err)
		assert.Equal(t, int64(5), batch.InitialQuantity)
	})
}

func TestBatch_Delete(t *testing.T) {
	t.Run("soft deletes an untouched batch", func(t *testing.T) {
		batch := newTestBatch(t, 5)

		require.NoError(t, batch.Delete(time.Now()))
		assert.False(t, batch.IsActive)
		assert.NotNil(t, batch.DeletedAt)
	})

	t.Run("locked once units are sold", func(t *testing.T) {
		batch := newTestBatch(t, 5)
		require.NoError(t, batch.Consume(1))

		require.Error(t, batch.Delete(time.Now()))
		assert.True(t, batch.IsActive)
	})
}

func TestTotalCost(t *testing.T) {
	a := newTestBatch(t, 10) // 10 * 100 = 1000
	b := newTestBatch(t, 3)  // 3 * 100 = 300
	deleted := newTestBatch(t, 7)
	require.NoError(t, deleted.Delete(time.Now()))

	total := TotalCost([]Batch{*a, *b, *deleted})

	assert.True(t, total.Equal(decimal.NewFromInt(1300)))
}
