package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID with all its items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales matching the filter, returning the page and
// the total count
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		base = base.Where("customer_id = ?", customerID)
	}
	if inDebt, ok := filter.Filters["in_debt"]; ok && inDebt == true {
		base = base.Where("debt_repayment_date IS NOT NULL")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "business_date")
	var rows []models.SaleModel
	if err := base.
		Preload("Items").
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]trade.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, total, nil
}

// FindByCustomer finds the active sales of a customer
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("customer_id = ?", customerID)
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "business_date")
	var rows []models.SaleModel
	if err := query.
		Preload("Items").
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]trade.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, nil
}

// FindByItemID loads the sale owning the given sale item, with items
func (r *GormSaleRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*trade.Sale, error) {
	var item models.SaleItemModel
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, item.SaleID)
}

// Save creates or updates a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(models.SaleModelFromDomain(sale)).Error
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
