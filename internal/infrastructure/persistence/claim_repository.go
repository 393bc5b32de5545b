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

// GormClaimRepository implements ClaimRepository using GORM
type GormClaimRepository struct {
	db *gorm.DB
}

// NewGormClaimRepository creates a new GormClaimRepository
func NewGormClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// FindByID finds a claim by its ID
func (r *GormClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*warranty.Claim, error) {
	var model models.ClaimModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByWarranty finds all claims of a warranty, oldest first. Claims
// are kept even after the warranty is deleted.
func (r *GormClaimRepository) FindByWarranty(ctx context.Context, warrantyID uuid.UUID) ([]warranty.Claim, error) {
	var rows []models.ClaimModel
	if err := r.db.WithContext(ctx).
		Where("warranty_id = ?", warrantyID).
		Order("claim_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	claims := make([]warranty.Claim, len(rows))
	for i := range rows {
		claims[i] = *rows[i].ToDomain()
	}
	return claims, nil
}

// Save creates or updates a claim
func (r *GormClaimRepository) Save(ctx context.Context, claim *warranty.Claim) error {
	return r.db.WithContext(ctx).Save(models.ClaimModelFromDomain(claim)).Error
}

var _ warranty.ClaimRepository = (*GormClaimRepository)(nil)
