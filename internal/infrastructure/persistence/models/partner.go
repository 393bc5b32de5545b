package models

import (
	"github.com/voltshop/backend/internal/domain/partner"
)

// EntityModel is the persistence model for the customer/supplier Entity
// aggregate root.
type EntityModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(200);not null;index"`
	Type         string `gorm:"type:varchar(20);not null;index"`
	CustomerType string `gorm:"type:varchar(20)"`
	Contact      string `gorm:"type:varchar(50);index"`
	Email        string `gorm:"type:varchar(200)"`
	Address      string `gorm:"type:text"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (EntityModel) TableName() string {
	return "entities"
}

// ToDomain converts the persistence model to a domain Entity
func (m *EntityModel) ToDomain() *partner.Entity {
	return &partner.Entity{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              partner.EntityType(m.Type),
		CustomerType:      partner.CustomerType(m.CustomerType),
		Contact:           m.Contact,
		Email:             m.Email,
		Address:           m.Address,
		SoftDelete:        m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Entity
func (m *EntityModel) FromDomain(e *partner.Entity) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Name = e.Name
	m.Type = string(e.Type)
	m.CustomerType = string(e.CustomerType)
	m.Contact = e.Contact
	m.Email = e.Email
	m.Address = e.Address
	m.FromDomainSoftDelete(e.SoftDelete)
}

// EntityModelFromDomain creates a new persistence model from a domain Entity
func EntityModelFromDomain(e *partner.Entity) *EntityModel {
	m := &EntityModel{}
	m.FromDomain(e)
	return m
}
