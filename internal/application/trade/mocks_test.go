package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/catalog"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// MockEntityRepository is a mock implementation of partner.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindByType(ctx context.Context, entityType partner.EntityType, filter shared.Filter) ([]partner.Entity, int64, error) {
	args := m.Called(ctx, entityType, filter)
	return args.Get(0).([]partner.Entity), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntityRepository) FindCustomerByContact(ctx context.Context, contact string) (*partner.Entity, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Entity), args.Error(1)
}

func (m *MockEntityRepository) Save(ctx context.Context, entity *partner.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveAll(ctx context.Context, products []catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

// MockBatchRepository is a mock implementation of inventory.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]inventory.Batch, error) {
	args := m.Called(ctx, purchaseID)
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) BarcodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBatchRepository) Insert(ctx context.Context, batch *inventory.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) SaveAll(ctx context.Context, batches []inventory.Batch) error {
	args := m.Called(ctx, batches)
	return args.Error(0)
}

func (m *MockBatchRepository) AvailabilityByProduct(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of trade.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

// MockWarrantyRepository is a mock implementation of warranty.WarrantyRepository
type MockWarrantyRepository struct {
	mock.Mock
}

func (m *MockWarrantyRepository) FindByID(ctx context.Context, id uuid.UUID) (*warranty.Warranty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warranty.Warranty), args.Error(1)
}

func (m *MockWarrantyRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) (*warranty.Warranty, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warranty.Warranty), args.Error(1)
}

func (m *MockWarrantyRepository) FindBySaleItem(ctx context.Context, saleItemID uuid.UUID) (*warranty.Warranty, error) {
	args := m.Called(ctx, saleItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warranty.Warranty), args.Error(1)
}

func (m *MockWarrantyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warranty.Warranty, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warranty.Warranty), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarrantyRepository) Save(ctx context.Context, w *warranty.Warranty) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// MockClaimRepository is a mock implementation of warranty.ClaimRepository
type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*warranty.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warranty.Claim), args.Error(1)
}

func (m *MockClaimRepository) FindByWarranty(ctx context.Context, warrantyID uuid.UUID) ([]warranty.Claim, error) {
	args := m.Called(ctx, warrantyID)
	return args.Get(0).([]warranty.Claim), args.Error(1)
}

func (m *MockClaimRepository) Save(ctx context.Context, claim *warranty.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of finance.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	args := m.Called(ctx, entityID, filter)
	return args.Get(0).([]finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAllBetween(ctx context.Context, dateRange shared.DateRange, filter shared.Filter) ([]finance.LedgerEntry, int64, error) {
	args := m.Called(ctx, dateRange, filter)
	return args.Get(0).([]finance.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) Save(ctx context.Context, entry *finance.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// stubRepositories bundles the mocks behind the txn.Repositories
// interface for service tests
type stubRepositories struct {
	entities   *MockEntityRepository
	categories *MockCategoryRepository
	products   *MockProductRepository
	batches    *MockBatchRepository
	purchases  *MockPurchaseRepository
	sales      *MockSaleRepository
	warranties *MockWarrantyRepository
	claims     *MockClaimRepository
	ledger     *MockLedgerRepository
}

func newStubRepositories() *stubRepositories {
	return &stubRepositories{
		entities:   new(MockEntityRepository),
		categories: new(MockCategoryRepository),
		products:   new(MockProductRepository),
		batches:    new(MockBatchRepository),
		purchases:  new(MockPurchaseRepository),
		sales:      new(MockSaleRepository),
		warranties: new(MockWarrantyRepository),
		claims:     new(MockClaimRepository),
		ledger:     new(MockLedgerRepository),
	}
}

func (r *stubRepositories) Entities() partner.EntityRepository      { return r.entities }
func (r *stubRepositories) Categories() catalog.CategoryRepository  { return r.categories }
func (r *stubRepositories) Products() catalog.ProductRepository     { return r.products }
func (r *stubRepositories) Batches() inventory.BatchRepository      { return r.batches }
func (r *stubRepositories) Purchases() trade.PurchaseRepository     { return r.purchases }
func (r *stubRepositories) Sales() trade.SaleRepository             { return r.sales }
func (r *stubRepositories) Warranties() warranty.WarrantyRepository { return r.warranties }
func (r *stubRepositories) Claims() warranty.ClaimRepository        { return r.claims }
func (r *stubRepositories) Ledger() finance.LedgerRepository        { return r.ledger }

// stubScope runs the transactional function directly against the stub
// repositories
type stubScope struct {
	repos *stubRepositories
}

func (s *stubScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return fn(s.repos)
}
