package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appfinance "github.com/voltshop/backend/internal/application/finance"
	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/catalog"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// barcodeAllocationRetries bounds how often a purchase retries barcode
// allocation after losing a unique-index race to a concurrent intake.
const barcodeAllocationRetries = 3

// PurchaseService coordinates purchase intake: batch creation with
// barcode allocation, warranty attachment and ledger reconciliation,
// all inside one transaction per operation.
type PurchaseService struct {
	scope txn.Scope
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(scope txn.Scope) *PurchaseService {
	return &PurchaseService{scope: scope}
}

// PurchaseResult pairs the stored purchase with the ledger entry that
// mirrors it
type PurchaseResult struct {
	Purchase PurchaseResponse               `json:"purchase"`
	Ledger   appfinance.LedgerEntryResponse `json:"ledger_entry"`
}

func purchaseDescription(supplierName string) string {
	return fmt.Sprintf("Purchase from %s", supplierName)
}

// Create records a stock intake from a supplier. Every requested item
// becomes a batch with a freshly allocated barcode; any item failure
// aborts the whole purchase.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResult, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one item")
	}

	var result *PurchaseResult
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		supplier, err := repos.Entities().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsSupplier() {
			return shared.NewDomainError("INVALID_SUPPLIER", "Entity is not a supplier")
		}

		purchase, err := trade.NewPurchase(req.SupplierID, req.BusinessDate, req.PaymentMethod, decimal.NewFromFloat(req.PaidAmount), req.ProofOfPurchase)
		if err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		batches := make([]inventory.Batch, 0, len(req.Items))
		items := make([]PurchaseItemResponse, 0, len(req.Items))
		for _, in := range req.Items {
			product, err := repos.Products().FindByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			batch, err := allocateBatch(ctx, repos, purchase.ID, product, in.Quantity, in.UnitPrice, in.SalePrice, req.BusinessDate)
			if err != nil {
				return err
			}

			var w *warranty.Warranty
			if in.RetailerWarranty > 0 || in.CustomerWarranty > 0 {
				w, err = warranty.NewBatchWarranty(batch.ID, in.RetailerWarranty, in.CustomerWarranty, req.BusinessDate)
				if err != nil {
					return err
				}
				if err := repos.Warranties().Save(ctx, w); err != nil {
					return err
				}
			}

			batches = append(batches, *batch)
			items = append(items, ToPurchaseItemResponse(batch, w))
		}

		purchase.SetTotal(inventory.TotalCost(batches))
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		entry, err := appfinance.Reconcile(ctx, repos.Ledger(), purchase.SupplierID, purchase.ID, purchaseDescription(supplier.Name), purchase.TotalAmount, purchase.PaidAmount, purchase.BusinessDate)
		if err != nil {
			return err
		}

		result = &PurchaseResult{
			Purchase: ToPurchaseResponse(purchase, items),
			Ledger:   appfinance.ToLedgerEntryResponse(entry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// allocateBatch creates a batch with the next sequential barcode for
// the product and business date. The barcode's unique index is the
// arbiter under concurrency: a duplicate insert surfaces as
// ErrAlreadyExists and the allocation is retried with fresh state.
func allocateBatch(ctx context.Context, repos txn.Repositories, purchaseID uuid.UUID, product *catalog.Product, quantity int64, unitPrice, salePrice float64, businessDate time.Time) (*inventory.Batch, error) {
	prefix := inventory.BarcodePrefix(product.Code, businessDate)

	var lastErr error
	for attempt := 0; attempt < barcodeAllocationRetries; attempt++ {
		existing, err := repos.Batches().BarcodesWithPrefix(ctx, prefix)
		if err != nil {
			return nil, err
		}
		barcode := inventory.NextBarcode(prefix, existing)

		batch, err := inventory.NewBatch(purchaseID, product.ID, quantity, decimal.NewFromFloat(unitPrice), decimal.NewFromFloat(salePrice), barcode, businessDate)
		if err != nil {
			return nil, err
		}
		if err := repos.Batches().Insert(ctx, batch); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return batch, nil
	}
	return nil, lastErr
}

// GetByID returns a purchase with its active batches. Warranty expiry
// discovered while reading is persisted.
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp, err = purchaseWithItems(ctx, repos, purchase, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns a page of purchases with their active batches
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) ([]PurchaseResponse, int64, error) {
	var (
		responses []PurchaseResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		purchases, count, err := repos.Purchases().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		now := time.Now()
		responses = make([]PurchaseResponse, 0, len(purchases))
		for i := range purchases {
			resp, err := purchaseWithItems(ctx, repos, &purchases[i], now)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func purchaseWithItems(ctx context.Context, repos txn.Repositories, purchase *trade.Purchase, now time.Time) (*PurchaseResponse, error) {
	batches, err := repos.Batches().FindByPurchase(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseItemResponse, 0, len(batches))
	for i := range batches {
		batch := &batches[i]
		if !batch.IsActive {
			continue
		}
		w, err := batchWarranty(ctx, repos, batch.ID, now)
		if err != nil {
			return nil, err
		}
		items = append(items, ToPurchaseItemResponse(batch, w))
	}

	resp := ToPurchaseResponse(purchase, items)
	return &resp, nil
}

// batchWarranty loads the batch's warranty if one exists, persisting
// any expiry transition observed at read time.
func batchWarranty(ctx context.Context, repos txn.Repositories, batchID uuid.UUID, now time.Time) (*warranty.Warranty, error) {
	w, err := repos.Warranties().FindByBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if w.ReconcileStatus(now) {
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Update changes a purchase's settlement terms and, when the business
// date moves, realigns its batches, warranties and ledger entry to the
// new date.
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	var resp *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		supplier, err := repos.Entities().FindByID(ctx, purchase.SupplierID)
		if err != nil {
			return err
		}

		if err := purchase.UpdateTerms(req.PaymentMethod, decimal.NewFromFloat(req.PaidAmount), req.ProofOfPurchase); err != nil {
			return err
		}

		if req.BusinessDate != nil && !req.BusinessDate.Equal(purchase.BusinessDate) {
			if err := realignPurchaseDate(ctx, repos, purchase, *req.BusinessDate); err != nil {
				return err
			}
		}

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if _, err := appfinance.Reconcile(ctx, repos.Ledger(), purchase.SupplierID, purchase.ID, purchaseDescription(supplier.Name), purchase.TotalAmount, purchase.PaidAmount, purchase.BusinessDate); err != nil {
			return err
		}

		resp, err = purchaseWithItems(ctx, repos, purchase, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// realignPurchaseDate moves the purchase and its batches and warranties
// to a new business date. The ledger entry follows during the caller's
// reconciliation.
func realignPurchaseDate(ctx context.Context, repos txn.Repositories, purchase *trade.Purchase, businessDate time.Time) error {
	if err := purchase.RealignDate(businessDate); err != nil {
		return err
	}

	batches, err := repos.Batches().FindByPurchase(ctx, purchase.ID)
	if err != nil {
		return err
	}
	for i := range batches {
		batch := &batches[i]
		if !batch.IsActive {
			continue
		}
		batch.RealignDate(businessDate)
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}
		w, err := repos.Warranties().FindByBatch(ctx, batch.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		w.RealignStart(businessDate)
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a purchase and cascades to its active batches and
// their warranties. Rejected while any batch has sold units.
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		batches, err := repos.Batches().FindByPurchase(ctx, purchase.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range batches {
			batch := &batches[i]
			if !batch.IsActive {
				continue
			}
			if err := batch.Delete(now); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
			w, err := repos.Warranties().FindByBatch(ctx, batch.ID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			w.Deactivate(now)
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return err
			}
		}

		purchase.Deactivate(now)
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		return appfinance.Deactivate(ctx, repos.Ledger(), purchase.ID, now)
	})
}

// AddItem appends a new batch to an existing purchase and reconciles
// the purchase total and ledger entry
func (s *PurchaseService) AddItem(ctx context.Context, purchaseID uuid.UUID, in CreatePurchaseItemInput) (*PurchaseItemResponse, error) {
	var resp *PurchaseItemResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if !purchase.IsActive {
			return shared.NewDomainError("INVALID_STATE", "Purchase has been deleted")
		}
		product, err := repos.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			return err
		}

		batch, err := allocateBatch(ctx, repos, purchase.ID, product, in.Quantity, in.UnitPrice, in.SalePrice, purchase.BusinessDate)
		if err != nil {
			return err
		}

		var w *warranty.Warranty
		if in.RetailerWarranty > 0 || in.CustomerWarranty > 0 {
			w, err = warranty.NewBatchWarranty(batch.ID, in.RetailerWarranty, in.CustomerWarranty, purchase.BusinessDate)
			if err != nil {
				return err
			}
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return err
			}
		}

		if err := reconcilePurchaseTotal(ctx, repos, purchase); err != nil {
			return err
		}

		item := ToPurchaseItemResponse(batch, w)
		resp = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateItem edits a batch's commercial fields. Rejected once the batch
// has sold units. The attached warranty is created, updated or retired
// to match the requested durations.
func (s *PurchaseService) UpdateItem(ctx context.Context, batchID uuid.UUID, req UpdatePurchaseItemRequest) (*PurchaseItemResponse, error) {
	var resp *PurchaseItemResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		purchase, err := repos.Purchases().FindByID(ctx, batch.PurchaseID)
		if err != nil {
			return err
		}

		if err := batch.UpdateCommercial(req.ProductID, req.Quantity, decimal.NewFromFloat(req.UnitPrice), decimal.NewFromFloat(req.SalePrice)); err != nil {
			return err
		}
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}

		w, err := reconcileBatchWarranty(ctx, repos, batch, req.RetailerWarranty, req.CustomerWarranty)
		if err != nil {
			return err
		}

		if err := reconcilePurchaseTotal(ctx, repos, purchase); err != nil {
			return err
		}

		item := ToPurchaseItemResponse(batch, w)
		resp = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// reconcileBatchWarranty makes the batch's warranty match the requested
// durations: create when missing, update when present, retire when both
// durations drop to zero.
func reconcileBatchWarranty(ctx context.Context, repos txn.Repositories, batch *inventory.Batch, retailerDuration, customerDuration int) (*warranty.Warranty, error) {
	w, err := repos.Warranties().FindByBatch(ctx, batch.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if retailerDuration == 0 && customerDuration == 0 {
		if w == nil {
			return nil, nil
		}
		w.Deactivate(time.Now())
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if w == nil {
		w, err = warranty.NewBatchWarranty(batch.ID, retailerDuration, customerDuration, batch.BusinessDate)
		if err != nil {
			return nil, err
		}
	} else if err := w.UpdateDurations(retailerDuration, customerDuration); err != nil {
		return nil, err
	}
	if err := repos.Warranties().Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteItem soft-deletes a batch and its warranty, then reconciles the
// parent purchase total and ledger entry. Rejected once the batch has
// sold units.
func (s *PurchaseService) DeleteItem(ctx context.Context, batchID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		purchase, err := repos.Purchases().FindByID(ctx, batch.PurchaseID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := batch.Delete(now); err != nil {
			return err
		}
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}

		w, err := repos.Warranties().FindByBatch(ctx, batch.ID)
		if err == nil {
			w.Deactivate(now)
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return err
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		return reconcilePurchaseTotal(ctx, repos, purchase)
	})
}

// reconcilePurchaseTotal recomputes the purchase total from its active
// batches and re-derives the supplier's ledger entry
func reconcilePurchaseTotal(ctx context.Context, repos txn.Repositories, purchase *trade.Purchase) error {
	batches, err := repos.Batches().FindByPurchase(ctx, purchase.ID)
	if err != nil {
		return err
	}
	purchase.SetTotal(inventory.TotalCost(batches))
	if err := repos.Purchases().Save(ctx, purchase); err != nil {
		return err
	}

	supplier, err := repos.Entities().FindByID(ctx, purchase.SupplierID)
	if err != nil {
		return err
	}
	_, err = appfinance.Reconcile(ctx, repos.Ledger(), purchase.SupplierID, purchase.ID, purchaseDescription(supplier.Name), purchase.TotalAmount, purchase.PaidAmount, purchase.BusinessDate)
	return err
}
