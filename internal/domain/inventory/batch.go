package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/shared"
)

// Batch is one intake of a product received in a purchase, tracked
// independently for sale consumption and warranty. The quantity bound
// 0 <= SoldQuantity <= InitialQuantity holds at all times.
type Batch struct {
	shared.BaseEntity
	PurchaseID      uuid.UUID
	ProductID       uuid.UUID
	InitialQuantity int64
	SoldQuantity    int64
	UnitPrice       decimal.Decimal
	SalePrice       decimal.Decimal
	Barcode         string
	BusinessDate    time.Time
	shared.SoftDelete
}

// NewBatch creates a new stock batch for a purchase
func NewBatch(purchaseID, productID uuid.UUID, quantity int64, unitPrice, salePrice decimal.Decimal, barcode string, businessDate time.Time) (*Batch, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}

	batch := &Batch{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseID:      purchaseID,
		ProductID:       productID,
		InitialQuantity: quantity,
		SoldQuantity:    0,
		UnitPrice:       unitPrice,
		SalePrice:       salePrice,
		Barcode:         barcode,
		BusinessDate:    businessDate,
		SoftDelete:      shared.NewSoftDelete(),
	}
	batch.CreatedAt = businessDate
	return batch, nil
}

// Available returns the quantity still sellable from this batch
func (b *Batch) Available() int64 {
	return b.InitialQuantity - b.SoldQuantity
}

// LineTotal returns UnitPrice * InitialQuantity, the batch's share of
// the parent purchase total
func (b *Batch) LineTotal() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(b.InitialQuantity))
}

// HasSales reports whether any units have been sold from this batch.
// Once true, the batch's commercial fields are locked.
func (b *Batch) HasSales() bool {
	return b.SoldQuantity > 0
}

// Consume increments SoldQuantity by quantity, rejecting any request
// that would exceed InitialQuantity.
func (b *Batch) Consume(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !b.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Batch has been deleted")
	}
	if quantity > b.Available() {
		return shared.ErrInsufficientStock
	}
	b.SoldQuantity += quantity
	b.Touch()
	return nil
}

// Release decrements SoldQuantity by quantity, the symmetric reversal
// of Consume when a sale item is deleted or reduced.
func (b *Batch) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > b.SoldQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Cannot release more than sold quantity")
	}
	b.SoldQuantity -= quantity
	b.Touch()
	return nil
}

// UpdateCommercial changes the batch's product, quantity and prices.
// Rejected once any unit has been sold.
func (b *Batch) UpdateCommercial(productID uuid.UUID, quantity int64, unitPrice, salePrice decimal.Decimal) error {
	if b.HasSales() {
		return shared.NewDomainError("BATCH_LOCKED", "Batch has sold units and can no longer be edited")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() || salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	b.ProductID = productID
	b.InitialQuantity = quantity
	b.UnitPrice = unitPrice
	b.SalePrice = salePrice
	b.Touch()
	return nil
}

// Delete soft-deletes the batch. Rejected once any unit has been sold.
func (b *Batch) Delete(now time.Time) error {
	if b.HasSales() {
		return shared.NewDomainError("BATCH_LOCKED", "Batch has sold units and can no longer be deleted")
	}
	b.Deactivate(now)
	return nil
}

// RealignDate moves the batch to a new business date, propagated from
// the parent purchase
func (b *Batch) RealignDate(businessDate time.Time) {
	b.BusinessDate = businessDate
	b.CreatedAt = businessDate
	b.Touch()
}

// TotalCost sums LineTotal over the active batches
func TotalCost(batches []Batch) decimal.Decimal {
	total := decimal.Zero
	for i := range batches {
		if !batches[i].IsActive {
			continue
		}
		total = total.Add(batches[i].LineTotal())
	}
	return total
}

// BatchRepository defines persistence operations for stock batches
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindByIDForUpdate loads the batch under a row-level write lock so a
	// concurrent sale cannot pass the availability check on stale data.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]Batch, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Batch, error)
	// BarcodesWithPrefix returns existing barcodes starting with prefix,
	// ordered descending, for suffix allocation.
	BarcodesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	// Insert creates a new batch row inside a nested transaction so a
	// barcode collision surfaces as ErrAlreadyExists without aborting
	// the caller's enclosing transaction.
	Insert(ctx context.Context, batch *Batch) error
	Save(ctx context.Context, batch *Batch) error
	SaveAll(ctx context.Context, batches []Batch) error
	AvailabilityByProduct(ctx context.Context) (map[uuid.UUID]int64, error)
}
