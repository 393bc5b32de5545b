package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

func testCustomer(t *testing.T) *partner.Entity {
	t.Helper()
	customer, err := partner.NewCustomer("Rahim Traders", "01712000000", "", "Chattogram", partner.CustomerTypeShopOwner)
	require.NoError(t, err)
	return customer
}

func testBatch(t *testing.T, quantity int64, businessDate time.Time) *inventory.Batch {
	t.Helper()
	batch, err := inventory.NewBatch(uuid.New(), uuid.New(), quantity, decimal.NewFromInt(100), decimal.NewFromInt(130), "12345202406011", businessDate)
	require.NoError(t, err)
	return batch
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("consumes stock, derives the warranty and schedules the debt", func(t *testing.T) {
		customer := testCustomer(t)
		batch := testBatch(t, 10, businessDate.AddDate(0, 0, -5))
		bw, err := warranty.NewBatchWarranty(batch.ID, 12, 6, batch.BusinessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})

		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)
		repos.batches.On("Save", ctx, batch).Return(nil)
		repos.warranties.On("FindByBatch", ctx, batch.ID).Return(bw, nil)
		repos.warranties.On("Save", ctx, mock.AnythingOfType("*warranty.Warranty")).Return(nil)
		repos.sales.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.AnythingOfType("*finance.LedgerEntry")).Return(nil)

		resp, err := svc.Create(ctx, CreateSaleRequest{
			CustomerID:     &customer.ID,
			BusinessDate:   businessDate,
			PaymentMethod:  trade.PaymentMethodCash,
			Discount:       50,
			ReceivedAmount: 200,
			Items: []CreateSaleItemInput{
				{BatchID: batch.ID, ProductID: batch.ProductID, Quantity: 3, SalePrice: 130},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), batch.SoldQuantity)
		assert.Equal(t, 390.0, resp.TotalAmount)
		assert.Equal(t, 140.0, resp.Debt)
		require.NotNil(t, resp.DebtRepaymentDate)
		assert.Equal(t, businessDate.AddDate(0, 0, trade.DebtTermDays), *resp.DebtRepaymentDate)

		require.Len(t, resp.Items, 1)
		require.NotNil(t, resp.Items[0].Warranty)
		assert.Equal(t, 6, resp.Items[0].Warranty.CustomerDuration)
		assert.Equal(t, businessDate, resp.Items[0].Warranty.StartDate)
	})

	t.Run("rejects the whole sale when one line exceeds availability", func(t *testing.T) {
		customer := testCustomer(t)
		batch := testBatch(t, 2, businessDate)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)

		_, err := svc.Create(ctx, CreateSaleRequest{
			CustomerID:    &customer.ID,
			BusinessDate:  businessDate,
			PaymentMethod: trade.PaymentMethodCash,
			Items: []CreateSaleItemInput{
				{BatchID: batch.ID, ProductID: batch.ProductID, Quantity: 5, SalePrice: 130},
			},
		})

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		repos.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates a fresh customer from inline info", func(t *testing.T) {
		batch := testBatch(t, 10, businessDate)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})

		repos.entities.On("FindCustomerByContact", ctx, "01713000000").Return(nil, shared.ErrNotFound)
		repos.entities.On("Save", ctx, mock.AnythingOfType("*partner.Entity")).Return(nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)
		repos.batches.On("Save", ctx, batch).Return(nil)
		repos.warranties.On("FindByBatch", ctx, batch.ID).Return(nil, shared.ErrNotFound)
		repos.sales.On("Save", ctx, mock.Anything).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateSaleRequest{
			NewCustomer: &NewCustomerInput{
				Name:    "Karim",
				Contact: "01713000000",
			},
			BusinessDate:   businessDate,
			PaymentMethod:  trade.PaymentMethodCash,
			ReceivedAmount: 130,
			Items: []CreateSaleItemInput{
				{BatchID: batch.ID, ProductID: batch.ProductID, Quantity: 1, SalePrice: 130},
			},
		})

		require.NoError(t, err)
		assert.Nil(t, resp.DebtRepaymentDate)
		repos.entities.AssertExpectations(t)
	})

	t.Run("reuses an existing customer matched by contact", func(t *testing.T) {
		customer := testCustomer(t)
		batch := testBatch(t, 10, businessDate)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})

		repos.entities.On("FindCustomerByContact", ctx, customer.Contact).Return(customer, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)
		repos.batches.On("Save", ctx, batch).Return(nil)
		repos.warranties.On("FindByBatch", ctx, batch.ID).Return(nil, shared.ErrNotFound)
		repos.sales.On("Save", ctx, mock.Anything).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateSaleRequest{
			NewCustomer: &NewCustomerInput{
				Name:    "Rahim Traders",
				Contact: customer.Contact,
			},
			BusinessDate:   businessDate,
			PaymentMethod:  trade.PaymentMethodCash,
			ReceivedAmount: 130,
			Items: []CreateSaleItemInput{
				{BatchID: batch.ID, ProductID: batch.ProductID, Quantity: 1, SalePrice: 130},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, customer.ID.String(), resp.CustomerID)
		repos.entities.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a batch that does not match the requested product", func(t *testing.T) {
		customer := testCustomer(t)
		batch := testBatch(t, 10, businessDate)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)

		_, err := svc.Create(ctx, CreateSaleRequest{
			CustomerID:    &customer.ID,
			BusinessDate:  businessDate,
			PaymentMethod: trade.PaymentMethodCash,
			Items: []CreateSaleItemInput{
				{BatchID: batch.ID, ProductID: uuid.New(), Quantity: 1, SalePrice: 130},
			},
		})

		require.Error(t, err)
		assert.Equal(t, int64(0), batch.SoldQuantity)
	})
}

func TestSaleService_Delete(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("restores sold quantities exactly and retires the ledger entry", func(t *testing.T) {
		customer := testCustomer(t)
		batch := testBatch(t, 10, businessDate)
		require.NoError(t, batch.Consume(4))

		sale, err := trade.NewSale(customer.ID, businessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(520))
		require.NoError(t, err)
		_, err = sale.AddItem(batch.ProductID, batch.ID, 4, decimal.NewFromInt(130))
		require.NoError(t, err)
		sale.RecalculateTotal()

		entry, err := finance.NewLedgerEntry(customer.ID, sale.ID, "Sale to Rahim Traders", decimal.NewFromInt(520), decimal.NewFromInt(520), businessDate)
		require.NoError(t, err)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)
		repos.batches.On("Save", ctx, batch).Return(nil)
		repos.warranties.On("FindBySaleItem", ctx, sale.Items[0].ID).Return(nil, shared.ErrNotFound)
		repos.sales.On("Save", ctx, sale).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, sale.ID).Return(entry, nil)
		repos.ledger.On("Save", ctx, entry).Return(nil)

		require.NoError(t, svc.Delete(ctx, sale.ID))

		assert.Equal(t, int64(0), batch.SoldQuantity)
		assert.False(t, sale.IsActive)
		assert.False(t, sale.Items[0].IsActive)
		assert.False(t, entry.IsActive)
	})
}

func TestSaleService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T, initial, sold int64) (*SaleService, *stubRepositories, *trade.Sale, *inventory.Batch) {
		t.Helper()
		customer := testCustomer(t)
		batch := testBatch(t, initial, businessDate)
		require.NoError(t, batch.Consume(sold))

		sale, err := trade.NewSale(customer.ID, businessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(1000))
		require.NoError(t, err)
		_, err = sale.AddItem(batch.ProductID, batch.ID, sold, decimal.NewFromInt(130))
		require.NoError(t, err)
		sale.RecalculateTotal()
		sale.RefreshDebtSchedule()

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.sales.On("FindByItemID", ctx, sale.Items[0].ID).Return(sale, nil)
		repos.batches.On("FindByIDForUpdate", ctx, batch.ID).Return(batch, nil)
		repos.batches.On("Save", ctx, batch).Return(nil)
		repos.sales.On("Save", ctx, sale).Return(nil)
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.ledger.On("FindByTransaction", ctx, sale.ID).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.Anything).Return(nil)
		repos.warranties.On("FindBySaleItem", ctx, sale.Items[0].ID).Return(nil, shared.ErrNotFound)
		return svc, repos, sale, batch
	}

	t.Run("consumes the difference when quantity grows", func(t *testing.T) {
		svc, _, sale, batch := setup(t, 10, 3)

		resp, err := svc.UpdateItem(ctx, sale.Items[0].ID, 7)
		require.NoError(t, err)

		assert.Equal(t, int64(7), batch.SoldQuantity)
		assert.Equal(t, 910.0, resp.TotalAmount)
	})

	t.Run("releases the difference when quantity shrinks", func(t *testing.T) {
		svc, _, sale, batch := setup(t, 10, 5)

		resp, err := svc.UpdateItem(ctx, sale.Items[0].ID, 2)
		require.NoError(t, err)

		assert.Equal(t, int64(2), batch.SoldQuantity)
		assert.Equal(t, 260.0, resp.TotalAmount)
	})

	t.Run("rejects growth past availability", func(t *testing.T) {
		svc, repos, sale, batch := setup(t, 5, 3)

		_, err := svc.UpdateItem(ctx, sale.Items[0].ID, 9)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(3), batch.SoldQuantity)
		repos.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSaleService_Update(t *testing.T) {
	ctx := context.Background()
	businessDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("keeps the repayment date while still in debt", func(t *testing.T) {
		customer := testCustomer(t)
		sale, err := trade.NewSale(customer.ID, businessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = sale.AddItem(uuid.New(), uuid.New(), 5, decimal.NewFromInt(130))
		require.NoError(t, err)
		sale.RecalculateTotal()
		sale.RefreshDebtSchedule()
		originalDue := *sale.DebtRepaymentDate

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.sales.On("Save", ctx, sale).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, sale.ID).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.Anything).Return(nil)
		repos.warranties.On("FindBySaleItem", ctx, sale.Items[0].ID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Update(ctx, sale.ID, UpdateSaleRequest{
			PaymentMethod:  trade.PaymentMethodCash,
			ReceivedAmount: 200,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.DebtRepaymentDate)
		assert.Equal(t, originalDue, *resp.DebtRepaymentDate)
	})

	t.Run("clears the repayment date when the debt is settled", func(t *testing.T) {
		customer := testCustomer(t)
		sale, err := trade.NewSale(customer.ID, businessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = sale.AddItem(uuid.New(), uuid.New(), 5, decimal.NewFromInt(130))
		require.NoError(t, err)
		sale.RecalculateTotal()
		sale.RefreshDebtSchedule()
		require.NotNil(t, sale.DebtRepaymentDate)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.sales.On("Save", ctx, sale).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, sale.ID).Return(nil, shared.ErrNotFound)
		repos.ledger.On("Save", ctx, mock.Anything).Return(nil)
		repos.warranties.On("FindBySaleItem", ctx, sale.Items[0].ID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Update(ctx, sale.ID, UpdateSaleRequest{
			PaymentMethod:  trade.PaymentMethodCash,
			ReceivedAmount: 650,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.DebtRepaymentDate)
	})

	t.Run("realigns lines, warranties and the ledger entry on a date change", func(t *testing.T) {
		customer := testCustomer(t)
		sale, err := trade.NewSale(customer.ID, businessDate, trade.PaymentMethodCash, decimal.Zero, decimal.NewFromInt(650))
		require.NoError(t, err)
		_, err = sale.AddItem(uuid.New(), uuid.New(), 5, decimal.NewFromInt(130))
		require.NoError(t, err)
		sale.RecalculateTotal()

		sw, err := warranty.NewSaleItemWarranty(sale.Items[0].ID, 12, 6, businessDate)
		require.NoError(t, err)
		entry, err := finance.NewLedgerEntry(customer.ID, sale.ID, "Sale to Rahim Traders", decimal.NewFromInt(650), decimal.NewFromInt(650), businessDate)
		require.NoError(t, err)

		newDate := businessDate.AddDate(0, 0, 3)

		repos := newStubRepositories()
		svc := NewSaleService(&stubScope{repos: repos})
		repos.sales.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repos.entities.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repos.warranties.On("FindBySaleItem", ctx, sale.Items[0].ID).Return(sw, nil)
		repos.warranties.On("Save", ctx, sw).Return(nil)
		repos.sales.On("Save", ctx, sale).Return(nil)
		repos.ledger.On("FindByTransaction", ctx, sale.ID).Return(entry, nil)
		repos.ledger.On("Save", ctx, entry).Return(nil)

		resp, err := svc.Update(ctx, sale.ID, UpdateSaleRequest{
			BusinessDate:   &newDate,
			PaymentMethod:  trade.PaymentMethodCash,
			ReceivedAmount: 650,
		})
		require.NoError(t, err)

		assert.Equal(t, newDate, resp.BusinessDate)
		assert.Equal(t, newDate, sw.StartDate)
		assert.Equal(t, newDate, entry.BusinessDate)
	})
}
