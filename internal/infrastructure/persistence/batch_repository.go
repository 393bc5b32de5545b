package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the batch under a row-level write lock so a
// concurrent sale cannot pass the availability check on stale data
func (r *GormBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchase finds all batches of a purchase, including
// soft-deleted ones; callers filter on IsActive as needed
func (r *GormBatchRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]inventory.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindByProduct finds the active batches of a product
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("business_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// BarcodesWithPrefix returns existing barcodes starting with prefix,
// ordered descending. Soft-deleted batches keep their barcodes, so they
// are included to prevent reuse.
func (r *GormBatchRepository) BarcodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var barcodes []string
	if err := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Where("barcode LIKE ?", prefix+"%").
		Order("barcode DESC").
		Pluck("barcode", &barcodes).Error; err != nil {
		return nil, err
	}
	return barcodes, nil
}

// Insert creates a new batch. The INSERT runs in a nested transaction,
// a savepoint on Postgres, so a barcode collision rolls back to the
// savepoint instead of aborting the enclosing transaction, and the
// caller can retry with a fresh suffix.
func (r *GormBatchRepository) Insert(ctx context.Context, batch *inventory.Batch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models.BatchModelFromDomain(batch)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Save creates or updates a batch. A barcode collision from a
// concurrent allocation surfaces as ErrAlreadyExists so the caller can
// retry with a fresh suffix.
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	err := r.db.WithContext(ctx).Save(models.BatchModelFromDomain(batch)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// SaveAll creates or updates multiple batches
func (r *GormBatchRepository) SaveAll(ctx context.Context, batches []inventory.Batch) error {
	if len(batches) == 0 {
		return nil
	}
	rows := make([]models.BatchModel, len(batches))
	for i := range batches {
		rows[i] = *models.BatchModelFromDomain(&batches[i])
	}
	err := r.db.WithContext(ctx).Save(&rows).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// AvailabilityByProduct sums the unsold quantity of active batches per
// product
func (r *GormBatchRepository) AvailabilityByProduct(ctx context.Context) (map[uuid.UUID]int64, error) {
	type row struct {
		ProductID uuid.UUID
		Available int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Select("product_id, COALESCE(SUM(initial_quantity - sold_quantity), 0) AS available").
		Where("is_active = ?", true).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	availability := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		availability[r.ProductID] = r.Available
	}
	return availability, nil
}

func toDomainBatches(rows []models.BatchModel) []inventory.Batch {
	batches := make([]inventory.Batch, len(rows))
	for i := range rows {
		batches[i] = *rows[i].ToDomain()
	}
	return batches
}

var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
