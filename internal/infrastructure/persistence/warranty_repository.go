package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/warranty"
	"github.com/voltshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWarrantyRepository implements WarrantyRepository using GORM
type GormWarrantyRepository struct {
	db *gorm.DB
}

// NewGormWarrantyRepository creates a new GormWarrantyRepository
func NewGormWarrantyRepository(db *gorm.DB) *GormWarrantyRepository {
	return &GormWarrantyRepository{db: db}
}

// FindByID finds a warranty by its ID
func (r *GormWarrantyRepository) FindByID(ctx context.Context, id uuid.UUID) (*warranty.Warranty, error) {
	var model models.WarrantyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBatch finds the active warranty attached to a stock batch
func (r *GormWarrantyRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) (*warranty.Warranty, error) {
	var model models.WarrantyModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ? AND is_active = ?", batchID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleItem finds the active warranty attached to a sale item
func (r *GormWarrantyRepository) FindBySaleItem(ctx context.Context, saleItemID uuid.UUID) (*warranty.Warranty, error) {
	var model models.WarrantyModel
	if err := r.db.WithContext(ctx).
		Where("sale_item_id = ? AND is_active = ?", saleItemID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all warranties matching the filter, returning the page
// and the total count
func (r *GormWarrantyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warranty.Warranty, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.WarrantyModel{})
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, WarrantySortFields, "start_date")
	var rows []models.WarrantyModel
	if err := base.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	warranties := make([]warranty.Warranty, len(rows))
	for i := range rows {
		warranties[i] = *rows[i].ToDomain()
	}
	return warranties, total, nil
}

// Save creates or updates a warranty
func (r *GormWarrantyRepository) Save(ctx context.Context, w *warranty.Warranty) error {
	return r.db.WithContext(ctx).Save(models.WarrantyModelFromDomain(w)).Error
}

var _ warranty.WarrantyRepository = (*GormWarrantyRepository)(nil)
