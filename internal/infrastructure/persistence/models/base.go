package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate
// roots, extending BaseModel with a version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// SoftDeleteModel provides audit-preserving deletion fields. Rows are
// never physically removed.
type SoftDeleteModel struct {
	IsActive  bool       `gorm:"not null;default:true;index"`
	DeletedAt *time.Time `gorm:"type:timestamp"`
}

// ToDomain converts SoftDeleteModel to domain SoftDelete
func (m *SoftDeleteModel) ToDomain() shared.SoftDelete {
	return shared.SoftDelete{
		IsActive:  m.IsActive,
		DeletedAt: m.DeletedAt,
	}
}

// FromDomainSoftDelete populates SoftDeleteModel from domain SoftDelete
func (m *SoftDeleteModel) FromDomainSoftDelete(s shared.SoftDelete) {
	m.IsActive = s.IsActive
	m.DeletedAt = s.DeletedAt
}
