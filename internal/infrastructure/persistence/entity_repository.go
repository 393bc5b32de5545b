package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntityRepository implements EntityRepository using GORM
type GormEntityRepository struct {
	db *gorm.DB
}

// NewGormEntityRepository creates a new GormEntityRepository
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

// FindByID finds an entity by its ID
func (r *GormEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Entity, error) {
	var model models.EntityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByType finds entities of the given type matching the filter,
// returning the page and the total count
func (r *GormEntityRepository) FindByType(ctx context.Context, entityType partner.EntityType, filter shared.Filter) ([]partner.Entity, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.EntityModel{}).Where("type = ?", entityType)
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR contact ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, EntitySortFields, "created_at")
	var rows []models.EntityModel
	if err := base.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entities := make([]partner.Entity, len(rows))
	for i := range rows {
		entities[i] = *rows[i].ToDomain()
	}
	return entities, total, nil
}

// FindCustomerByContact finds an active customer by contact number
func (r *GormEntityRepository) FindCustomerByContact(ctx context.Context, contact string) (*partner.Entity, error) {
	if contact == "" {
		return nil, shared.ErrNotFound
	}
	var model models.EntityModel
	if err := r.db.WithContext(ctx).
		Where("type = ? AND contact = ? AND is_active = ?", partner.EntityTypeCustomer, contact, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an entity
func (r *GormEntityRepository) Save(ctx context.Context, entity *partner.Entity) error {
	return r.db.WithContext(ctx).Save(models.EntityModelFromDomain(entity)).Error
}

var _ partner.EntityRepository = (*GormEntityRepository)(nil)
