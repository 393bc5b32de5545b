package warranty

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

// stubRepositories bundles the mocks this package exercises behind the
// txn.Repositories interface; repositories the warranty flows never
// touch stay nil.
type stubRepositories struct {
	warranties *MockWarrantyRepository
	claims     *MockClaimRepository
	batches    *MockBatchRepository
	sales      *MockSaleRepository
}

func newStubRepositories() *stubRepositories {
	return &stubRepositories{
		warranties: new(MockWarrantyRepository),
		claims:     new(MockClaimRepository),
		batches:    new(MockBatchRepository),
		sales:      new(MockSaleRepository),
	}
}

func (r *stubRepositories) Entities() partner.EntityRepository      { return nil }
func (r *stubRepositories) Categories() catalog.CategoryRepository  { return nil }
func (r *stubRepositories) Products() catalog.ProductRepository     { return nil }
func (r *stubRepositories) Batches() inventory.BatchRepository      { return r.batches }
func (r *stubRepositories) Purchases() trade.PurchaseRepository     { return nil }
func (r *stubRepositories) Sales() trade.SaleRepository             { return r.sales }
func (r *stubRepositories) Warranties() warranty.WarrantyRepository { return r.warranties }
func (r *stubRepositories) Claims() warranty.ClaimRepository        { return r.claims }
func (r *stubRepositories) Ledger() finance.LedgerRepository        { return nil }

// stubScope runs the transactional function directly against the stub
// repositories
type stubScope struct {
	repos *stubRepositories
}

func (s *stubScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return fn(s.repos)
}
