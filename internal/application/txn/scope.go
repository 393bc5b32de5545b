// Package txn defines the transactional boundary used by application
// services. Every multi-aggregate mutation runs inside Scope.Execute so
// that stock movements, warranty propagation and ledger reconciliation
// commit or roll back as one unit.
package txn

import (
	"context"

	"github.com/voltshop/backend/internal/domain/catalog"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// Repositories provides access to all repositories scoped to one
// transaction
type Repositories interface {
	Entities() partner.EntityRepository
	Categories() catalog.CategoryRepository
	Products() catalog.ProductRepository
	Batches() inventory.BatchRepository
	Purchases() trade.PurchaseRepository
	Sales() trade.SaleRepository
	Warranties() warranty.WarrantyRepository
	Claims() warranty.ClaimRepository
	Ledger() finance.LedgerRepository
}

// Scope executes a function within a database transaction. If the
// function returns an error the transaction is rolled back in full.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
