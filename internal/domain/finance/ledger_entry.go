package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/shared"
)

// LedgerEntry is the derived financial snapshot for one purchase or
// sale of an entity. TransactionID pins the entry to its parent
// purchase or sale, so two same-day transactions for one entity keep
// separate records. RemainingAmount and OverpaidAmount are pure
// functions of total and received; they are never both positive.
type LedgerEntry struct {
	shared.BaseEntity
	EntityID        uuid.UUID
	TransactionID   uuid.UUID
	Description     string
	TotalAmount     decimal.Decimal
	ReceivedAmount  decimal.Decimal
	RemainingAmount decimal.Decimal
	OverpaidAmount  decimal.Decimal
	BusinessDate    time.Time
	shared.SoftDelete
}

// Derive computes the remaining and overpaid amounts for a total and
// received pair
func Derive(total, received decimal.Decimal) (remaining, overpaid decimal.Decimal) {
	remaining = total.Sub(received)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	overpaid = received.Sub(total)
	if overpaid.IsNegative() {
		overpaid = decimal.Zero
	}
	return remaining, overpaid
}

// NewLedgerEntry creates a ledger entry with derived amounts, pinned to
// the parent purchase or sale
func NewLedgerEntry(entityID, transactionID uuid.UUID, description string, total, received decimal.Decimal, businessDate time.Time) (*LedgerEntry, error) {
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Transaction ID cannot be empty")
	}
	if total.IsNegative() || received.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	if businessDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}

	remaining, overpaid := Derive(total, received)
	entry := &LedgerEntry{
		BaseEntity:      shared.NewBaseEntity(),
		EntityID:        entityID,
		TransactionID:   transactionID,
		Description:     description,
		TotalAmount:     total,
		ReceivedAmount:  received,
		RemainingAmount: remaining,
		OverpaidAmount:  overpaid,
		BusinessDate:    businessDate,
		SoftDelete:      shared.NewSoftDelete(),
	}
	entry.CreatedAt = businessDate
	return entry, nil
}

// Apply replaces the totals and re-derives the dependent amounts
func (e *LedgerEntry) Apply(total, received decimal.Decimal, description string) error {
	if total.IsNegative() || received.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	e.TotalAmount = total
	e.ReceivedAmount = received
	e.RemainingAmount, e.OverpaidAmount = Derive(total, received)
	if description != "" {
		e.Description = description
	}
	e.Touch()
	return nil
}

// RealignDate moves the entry to a new business date when the parent
// transaction's date changes
func (e *LedgerEntry) RealignDate(businessDate time.Time) error {
	if businessDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	e.BusinessDate = businessDate
	e.CreatedAt = businessDate
	e.Touch()
	return nil
}

// LedgerRepository defines persistence operations for ledger entries
type LedgerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	// FindByTransaction locates the active entry mirroring the given
	// parent purchase or sale.
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*LedgerEntry, error)
	FindByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]LedgerEntry, error)
	FindAllBetween(ctx context.Context, dateRange shared.DateRange, filter shared.Filter) ([]LedgerEntry, int64, error)
	Save(ctx context.Context, entry *LedgerEntry) error
}
