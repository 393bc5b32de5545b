package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTransaction locates the active entry mirroring the given parent
// purchase or sale
func (r *GormLedgerRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND is_active = ?", transactionID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntity finds the active entries of an entity, newest first
func (r *GormLedgerRepository) FindByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("entity_id = ?", entityID)
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "business_date")
	var rows []models.LedgerEntryModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLedgerEntries(rows), nil
}

// FindAllBetween finds the active entries with business dates inside
// the range, returning the page and the total count
func (r *GormLedgerRepository) FindAllBetween(ctx context.Context, dateRange shared.DateRange, filter shared.Filter) ([]finance.LedgerEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{})
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if !dateRange.Start.IsZero() {
		base = base.Where("business_date >= ?", dateRange.Start)
	}
	if !dateRange.End.IsZero() {
		base = base.Where("business_date <= ?", dateRange.End)
	}
	if entityID, ok := filter.Filters["entity_id"]; ok {
		base = base.Where("entity_id = ?", entityID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "business_date")
	var rows []models.LedgerEntryModel
	if err := base.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainLedgerEntries(rows), total, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerRepository) Save(ctx context.Context, entry *finance.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(models.LedgerEntryModelFromDomain(entry)).Error
}

func toDomainLedgerEntries(rows []models.LedgerEntryModel) []finance.LedgerEntry {
	entries := make([]finance.LedgerEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

var _ finance.LedgerRepository = (*GormLedgerRepository)(nil)
