package persistence

import (
	"context"

	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/catalog"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.Scope using GORM transactions so
// stock movement, warranty propagation and ledger reconciliation commit
// or roll back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories provides repositories scoped to one transaction
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Entities() partner.EntityRepository {
	return NewGormEntityRepository(r.tx)
}

func (r *gormRepositories) Categories() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) Batches() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *gormRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) Warranties() warranty.WarrantyRepository {
	return NewGormWarrantyRepository(r.tx)
}

func (r *gormRepositories) Claims() warranty.ClaimRepository {
	return NewGormClaimRepository(r.tx)
}

func (r *gormRepositories) Ledger() finance.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

var _ txn.Scope = (*GormTransactionScope)(nil)
var _ txn.Repositories = (*gormRepositories)(nil)
