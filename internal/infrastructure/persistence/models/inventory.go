package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/inventory"
)

// BatchModel is the persistence model for the stock Batch entity. The
// unique index on Barcode backs the retry loop that allocates suffixes
// under concurrent purchase creation.
type BatchModel struct {
	BaseModel
	PurchaseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InitialQuantity int64           `gorm:"not null"`
	SoldQuantity    int64           `gorm:"not null;default:0"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SalePrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Barcode         string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	BusinessDate    time.Time       `gorm:"type:date;not null;index"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts the persistence model to a domain Batch
func (m *BatchModel) ToDomain() *inventory.Batch {
	return &inventory.Batch{
		BaseEntity:      m.BaseModel.ToDomain(),
		PurchaseID:      m.PurchaseID,
		ProductID:       m.ProductID,
		InitialQuantity: m.InitialQuantity,
		SoldQuantity:    m.SoldQuantity,
		UnitPrice:       m.UnitPrice,
		SalePrice:       m.SalePrice,
		Barcode:         m.Barcode,
		BusinessDate:    m.BusinessDate,
		SoftDelete:      m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Batch
func (m *BatchModel) FromDomain(b *inventory.Batch) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.PurchaseID = b.PurchaseID
	m.ProductID = b.ProductID
	m.InitialQuantity = b.InitialQuantity
	m.SoldQuantity = b.SoldQuantity
	m.UnitPrice = b.UnitPrice
	m.SalePrice = b.SalePrice
	m.Barcode = b.Barcode
	m.BusinessDate = b.BusinessDate
	m.FromDomainSoftDelete(b.SoftDelete)
}

// BatchModelFromDomain creates a new persistence model from a domain Batch
func BatchModelFromDomain(b *inventory.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}
