package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// WarrantyModel is the persistence model for the Warranty entity.
// Exactly one of BatchID and SaleItemID is set.
type WarrantyModel struct {
	BaseModel
	BatchID          *uuid.UUID `gorm:"type:uuid;index"`
	SaleItemID       *uuid.UUID `gorm:"type:uuid;index"`
	RetailerDuration int        `gorm:"not null;default:0"`
	CustomerDuration int        `gorm:"not null;default:0"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	StartDate        time.Time  `gorm:"type:date;not null"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (WarrantyModel) TableName() string {
	return "warranties"
}

// ToDomain converts the persistence model to a domain Warranty
func (m *WarrantyModel) ToDomain() *warranty.Warranty {
	return &warranty.Warranty{
		BaseEntity:       m.BaseModel.ToDomain(),
		BatchID:          m.BatchID,
		SaleItemID:       m.SaleItemID,
		RetailerDuration: m.RetailerDuration,
		CustomerDuration: m.CustomerDuration,
		Status:           warranty.Status(m.Status),
		StartDate:        m.StartDate,
		SoftDelete:       m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Warranty
func (m *WarrantyModel) FromDomain(w *warranty.Warranty) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.BatchID = w.BatchID
	m.SaleItemID = w.SaleItemID
	m.RetailerDuration = w.RetailerDuration
	m.CustomerDuration = w.CustomerDuration
	m.Status = string(w.Status)
	m.StartDate = w.StartDate
	m.FromDomainSoftDelete(w.SoftDelete)
}

// WarrantyModelFromDomain creates a new persistence model from a domain Warranty
func WarrantyModelFromDomain(w *warranty.Warranty) *WarrantyModel {
	m := &WarrantyModel{}
	m.FromDomain(w)
	return m
}

// ClaimModel is the persistence model for the Claim entity. Claims
// survive the deletion of their warranty for audit history.
type ClaimModel struct {
	BaseModel
	WarrantyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClaimDate     time.Time  `gorm:"type:date;not null"`
	Quantity      int64      `gorm:"not null"`
	Details       string     `gorm:"type:text;not null"`
	Type          string     `gorm:"type:varchar(20);not null"`
	Status        string     `gorm:"type:varchar(20);not null;index"`
	ResolveDate   *time.Time `gorm:"type:date"`
	ResolveDetail string     `gorm:"type:text"`
	RejectDate    *time.Time `gorm:"type:date"`
	RejectDetail  string     `gorm:"type:text"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (ClaimModel) TableName() string {
	return "claims"
}

// ToDomain converts the persistence model to a domain Claim
func (m *ClaimModel) ToDomain() *warranty.Claim {
	return &warranty.Claim{
		BaseEntity:    m.BaseModel.ToDomain(),
		WarrantyID:    m.WarrantyID,
		ClaimDate:     m.ClaimDate,
		Quantity:      m.Quantity,
		Details:       m.Details,
		Type:          warranty.ClaimType(m.Type),
		Status:        warranty.ClaimStatus(m.Status),
		ResolveDate:   m.ResolveDate,
		ResolveDetail: m.ResolveDetail,
		RejectDate:    m.RejectDate,
		RejectDetail:  m.RejectDetail,
		SoftDelete:    m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Claim
func (m *ClaimModel) FromDomain(c *warranty.Claim) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.WarrantyID = c.WarrantyID
	m.ClaimDate = c.ClaimDate
	m.Quantity = c.Quantity
	m.Details = c.Details
	m.Type = string(c.Type)
	m.Status = string(c.Status)
	m.ResolveDate = c.ResolveDate
	m.ResolveDetail = c.ResolveDetail
	m.RejectDate = c.RejectDate
	m.RejectDetail = c.RejectDetail
	m.FromDomainSoftDelete(c.SoftDelete)
}

// ClaimModelFromDomain creates a new persistence model from a domain Claim
func ClaimModelFromDomain(c *warranty.Claim) *ClaimModel {
	m := &ClaimModel{}
	m.FromDomain(c)
	return m
}
