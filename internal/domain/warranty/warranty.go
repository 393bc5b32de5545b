package warranty

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
)

// Status represents the warranty lifecycle state
type Status string

const (
	StatusActive          Status = "ACTIVE"
	StatusExpired         Status = "EXPIRED"
	StatusCustomerClaimed Status = "CUSTOMER_CLAIMED"
	StatusSupplierClaimed Status = "SUPPLIER_CLAIMED"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusCustomerClaimed, StatusSupplierClaimed:
		return true
	}
	return false
}

// Warranty attaches to exactly one of a stock batch (retailer-side, the
// term the shop gets from its supplier) or a sale item (customer-side,
// the term the shop extends to its customer). Exactly one of BatchID
// and SaleItemID is set.
type Warranty struct {
	shared.BaseEntity
	BatchID          *uuid.UUID
	SaleItemID       *uuid.UUID
	RetailerDuration int // months
	CustomerDuration int // months
	Status           Status
	StartDate        time.Time
	shared.SoftDelete
}

// NewBatchWarranty creates a retailer-side warranty on a stock batch,
// starting at the purchase business date.
func NewBatchWarranty(batchID uuid.UUID, retailerDuration, customerDuration int, startDate time.Time) (*Warranty, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	return newWarranty(&batchID, nil, retailerDuration, customerDuration, startDate)
}

// NewSaleItemWarranty creates a customer-side warranty on a sale item,
// starting at the sale business date. The duration fields are copied
// from the batch warranty; the clocks run independently.
func NewSaleItemWarranty(saleItemID uuid.UUID, retailerDuration, customerDuration int, startDate time.Time) (*Warranty, error) {
	if saleItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE_ITEM", "Sale item ID cannot be empty")
	}
	return newWarranty(nil, &saleItemID, retailerDuration, customerDuration, startDate)
}

func newWarranty(batchID, saleItemID *uuid.UUID, retailerDuration, customerDuration int, startDate time.Time) (*Warranty, error) {
	if retailerDuration < 0 || customerDuration < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Warranty duration cannot be negative")
	}
	if retailerDuration == 0 && customerDuration == 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "At least one warranty duration must be set")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Start date cannot be empty")
	}

	w := &Warranty{
		BaseEntity:       shared.NewBaseEntity(),
		BatchID:          batchID,
		SaleItemID:       saleItemID,
		RetailerDuration: retailerDuration,
		CustomerDuration: customerDuration,
		Status:           StatusActive,
		StartDate:        startDate,
		SoftDelete:       shared.NewSoftDelete(),
	}
	w.CreatedAt = startDate
	return w, nil
}

// IsBatchWarranty reports whether the warranty is retailer-side
func (w *Warranty) IsBatchWarranty() bool {
	return w.BatchID != nil
}

// expiryMonths returns the duration that drives expiry: the retailer
// term on the purchase side, the customer term on the sale side.
func (w *Warranty) expiryMonths() int {
	if w.IsBatchWarranty() {
		return w.RetailerDuration
	}
	return w.CustomerDuration
}

// ExpiresAt returns the instant the warranty lapses
func (w *Warranty) ExpiresAt() time.Time {
	return w.StartDate.AddDate(0, w.expiryMonths(), 0)
}

// DeriveStatus computes the status as of now without mutating the
// warranty. Only ACTIVE warranties expire; claimed states are terminal.
func (w *Warranty) DeriveStatus(now time.Time) Status {
	if w.Status == StatusActive && now.After(w.ExpiresAt()) {
		return StatusExpired
	}
	return w.Status
}

// ReconcileStatus applies DeriveStatus and reports whether a transition
// was persistedly observed, letting read paths store it opportunistically.
func (w *Warranty) ReconcileStatus(now time.Time) bool {
	derived := w.DeriveStatus(now)
	if derived == w.Status {
		return false
	}
	w.Status = derived
	w.Touch()
	return true
}

// MarkClaimed transitions an ACTIVE warranty into the claimed state for
// the given claim type
func (w *Warranty) MarkClaimed(claimType ClaimType, now time.Time) error {
	if w.DeriveStatus(now) != StatusActive {
		return shared.NewDomainError("WARRANTY_NOT_ACTIVE", "Claims require an active warranty")
	}
	if claimType == ClaimTypeSupplier {
		w.Status = StatusSupplierClaimed
	} else {
		w.Status = StatusCustomerClaimed
	}
	w.Touch()
	return nil
}

// UpdateDurations changes the warranty terms. Only sensible while the
// owning batch is still editable; the caller enforces that.
func (w *Warranty) UpdateDurations(retailerDuration, customerDuration int) error {
	if retailerDuration < 0 || customerDuration < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Warranty duration cannot be negative")
	}
	w.RetailerDuration = retailerDuration
	w.CustomerDuration = customerDuration
	w.Touch()
	return nil
}

// RealignStart moves the warranty start when the owning transaction's
// business date changes
func (w *Warranty) RealignStart(startDate time.Time) {
	w.StartDate = startDate
	w.CreatedAt = startDate
	w.Touch()
}

// WarrantyRepository defines persistence operations for warranties
type WarrantyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warranty, error)
	FindByBatch(ctx context.Context, batchID uuid.UUID) (*Warranty, error)
	FindBySaleItem(ctx context.Context, saleItemID uuid.UUID) (*Warranty, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warranty, int64, error)
	Save(ctx context.Context, warranty *Warranty) error
}
