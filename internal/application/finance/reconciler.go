package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/shared"
)

// Reconcile upserts the ledger entry mirroring one purchase or sale.
// The entry is located by the parent transaction's ID, so each
// transaction keeps its own record even when an entity trades several
// times on one business date. A date change on the parent moves the
// entry with it. Callers invoke this inside the same transaction as the
// mutation it mirrors, so a reconciliation failure aborts the whole
// operation and the ledger can never desync.
func Reconcile(ctx context.Context, ledger finance.LedgerRepository, entityID, transactionID uuid.UUID, description string, total, received decimal.Decimal, businessDate time.Time) (*finance.LedgerEntry, error) {
	entry, err := ledger.FindByTransaction(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		entry, err = finance.NewLedgerEntry(entityID, transactionID, description, total, received, businessDate)
		if err != nil {
			return nil, err
		}
	} else {
		if err := entry.Apply(total, received, description); err != nil {
			return nil, err
		}
		if !entry.BusinessDate.Equal(businessDate) {
			if err := entry.RealignDate(businessDate); err != nil {
				return nil, err
			}
		}
	}

	if err := ledger.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Deactivate soft-deletes the ledger entry mirroring a deleted parent
// transaction, if one exists.
func Deactivate(ctx context.Context, ledger finance.LedgerRepository, transactionID uuid.UUID, now time.Time) error {
	entry, err := ledger.FindByTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	entry.Deactivate(now)
	return ledger.Save(ctx, entry)
}
