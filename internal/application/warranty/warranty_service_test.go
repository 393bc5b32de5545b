package warranty

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

func testBatch(t *testing.T, initial, sold int64) *inventory.Batch {
	t.Helper()
	batch, err := inventory.NewBatch(uuid.New(), uuid.New(), initial, decimal.NewFromInt(100), decimal.NewFromInt(130), "12345202406011", time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	if sold > 0 {
		require.NoError(t, batch.Consume(sold))
	}
	return batch
}

func TestWarrantyService_CreateClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("supplier claim up to the full intake quantity", func(t *testing.T) {
		batch := testBatch(t, 10, 4)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		repos.warranties.On("Save", ctx, w).Return(nil)
		repos.claims.On("Save", ctx, mock.AnythingOfType("*warranty.Claim")).Return(nil)

		resp, err := svc.CreateClaim(ctx, CreateClaimRequest{
			WarrantyID: w.ID,
			ClaimDate:  time.Now(),
			Quantity:   10,
			Details:    "Cells swelling across the whole batch",
			Type:       warranty.ClaimTypeSupplier,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, warranty.StatusSupplierClaimed, w.Status)
	})

	t.Run("customer claim is capped at the sold quantity", func(t *testing.T) {
		batch := testBatch(t, 10, 4)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.batches.On("FindByID", ctx, batch.ID).Return(batch, nil)

		_, err = svc.CreateClaim(ctx, CreateClaimRequest{
			WarrantyID: w.ID,
			ClaimDate:  time.Now(),
			Quantity:   5,
			Details:    "Customer returned more than sold",
			Type:       warranty.ClaimTypeCustomer,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLAIM_QUANTITY_EXCEEDED", domainErr.Code)
		assert.Equal(t, warranty.StatusActive, w.Status)
		repos.claims.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("resolves the owning batch through the sale line", func(t *testing.T) {
		batch := testBatch(t, 10, 3)
		sale, err := trade.NewSale(uuid.New(), batch.BusinessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(390))
		require.NoError(t, err)
		item, err := sale.AddItem(batch.ProductID, batch.ID, 3, decimal.NewFromInt(130))
		require.NoError(t, err)

		w, err := warranty.NewSaleItemWarranty(item.ID, 12, 6, sale.BusinessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.sales.On("FindByItemID", ctx, item.ID).Return(sale, nil)
		repos.batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		repos.warranties.On("Save", ctx, w).Return(nil)
		repos.claims.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.CreateClaim(ctx, CreateClaimRequest{
			WarrantyID: w.ID,
			ClaimDate:  time.Now(),
			Quantity:   3,
			Details:    "Battery not holding charge",
			Type:       warranty.ClaimTypeCustomer,
		})

		require.NoError(t, err)
		assert.Equal(t, warranty.StatusCustomerClaimed, w.Status)
		assert.Equal(t, "CUSTOMER", resp.Type)
	})

	t.Run("rejects a claim against an expired warranty and persists the expiry", func(t *testing.T) {
		batch := testBatch(t, 10, 0)
		w, err := warranty.NewBatchWarranty(batch.ID, 1, 0, time.Now().AddDate(0, -3, 0))
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.warranties.On("Save", ctx, w).Return(nil)

		_, err = svc.CreateClaim(ctx, CreateClaimRequest{
			WarrantyID: w.ID,
			ClaimDate:  time.Now(),
			Quantity:   1,
			Details:    "Too late",
			Type:       warranty.ClaimTypeSupplier,
		})

		require.Error(t, err)
		assert.Equal(t, warranty.StatusExpired, w.Status)
		repos.warranties.AssertCalled(t, "Save", ctx, w)
	})
}

func TestWarrantyService_SettleClaim(t *testing.T) {
	ctx := context.Background()

	newPendingClaim := func(t *testing.T) *warranty.Claim {
		t.Helper()
		batch := testBatch(t, 10, 0)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)
		claim, err := warranty.NewClaim(w, time.Now(), 2, "Dead cells", warranty.ClaimTypeSupplier, time.Now())
		require.NoError(t, err)
		return claim
	}

	t.Run("resolves a pending claim", func(t *testing.T) {
		claim := newPendingClaim(t)
		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.claims.On("FindByID", ctx, claim.ID).Return(claim, nil)
		repos.claims.On("Save", ctx, claim).Return(nil)

		resp, err := svc.ResolveClaim(ctx, claim.ID, time.Now(), "Replaced by supplier")
		require.NoError(t, err)
		assert.Equal(t, "RESOLVED", resp.Status)
		assert.Equal(t, "Replaced by supplier", resp.ResolveDetail)
	})

	t.Run("re-resolving a settled claim fails", func(t *testing.T) {
		claim := newPendingClaim(t)
		require.NoError(t, claim.Resolve(time.Now(), "Replaced"))

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.claims.On("FindByID", ctx, claim.ID).Return(claim, nil)

		_, err := svc.ResolveClaim(ctx, claim.ID, time.Now(), "Replaced again")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLAIM_NOT_PENDING", domainErr.Code)
		repos.claims.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejecting a rejected claim fails", func(t *testing.T) {
		claim := newPendingClaim(t)
		require.NoError(t, claim.Reject(time.Now(), "Physical damage"))

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.claims.On("FindByID", ctx, claim.ID).Return(claim, nil)

		_, err := svc.RejectClaim(ctx, claim.ID, time.Now(), "Still damaged")
		require.Error(t, err)
		assert.Equal(t, warranty.ClaimStatusRejected, claim.Status)
	})
}

func TestWarrantyService_UpdateClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("edits a pending claim within bounds", func(t *testing.T) {
		batch := testBatch(t, 10, 0)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)
		claim, err := warranty.NewClaim(w, time.Now(), 2, "Dead cells", warranty.ClaimTypeSupplier, time.Now())
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.claims.On("FindByID", ctx, claim.ID).Return(claim, nil)
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		repos.claims.On("Save", ctx, claim).Return(nil)

		resp, err := svc.UpdateClaim(ctx, claim.ID, UpdateClaimRequest{
			ClaimDate: time.Now(),
			Quantity:  5,
			Details:   "More dead cells found",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Quantity)
	})

	t.Run("rejects edits past the eligible quantity", func(t *testing.T) {
		batch := testBatch(t, 10, 0)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)
		claim, err := warranty.NewClaim(w, time.Now(), 2, "Dead cells", warranty.ClaimTypeSupplier, time.Now())
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.claims.On("FindByID", ctx, claim.ID).Return(claim, nil)
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.batches.On("FindByID", ctx, batch.ID).Return(batch, nil)

		_, err = svc.UpdateClaim(ctx, claim.ID, UpdateClaimRequest{
			ClaimDate: time.Now(),
			Quantity:  11,
			Details:   "Everything broke",
		})
		require.Error(t, err)
		assert.Equal(t, int64(2), claim.Quantity)
	})
}

func TestWarrantyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes the warranty and leaves claims untouched", func(t *testing.T) {
		batch := testBatch(t, 10, 0)
		w, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewWarrantyService(&stubScope{repos: repos})
		repos.warranties.On("FindByID", ctx, w.ID).Return(w, nil)
		repos.warranties.On("Save", ctx, w).Return(nil)

		require.NoError(t, svc.Delete(ctx, w.ID))
		assert.False(t, w.IsActive)
		repos.claims.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
