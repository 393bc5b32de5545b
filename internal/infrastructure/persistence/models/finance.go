package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/finance"
)

// LedgerEntryModel is the persistence model for the LedgerEntry entity.
// One row exists per parent purchase or sale, enforced by the unique
// index on transaction_id.
type LedgerEntryModel struct {
	BaseModel
	EntityID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_entity_date,priority:1"`
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Description     string          `gorm:"type:text"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReceivedAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OverpaidAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BusinessDate    time.Time       `gorm:"type:date;not null;index:idx_ledger_entity_date,priority:2"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		EntityID:        m.EntityID,
		TransactionID:   m.TransactionID,
		Description:     m.Description,
		TotalAmount:     m.TotalAmount,
		ReceivedAmount:  m.ReceivedAmount,
		RemainingAmount: m.RemainingAmount,
		OverpaidAmount:  m.OverpaidAmount,
		BusinessDate:    m.BusinessDate,
		SoftDelete:      m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry
func (m *LedgerEntryModel) FromDomain(e *finance.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.EntityID = e.EntityID
	m.TransactionID = e.TransactionID
	m.Description = e.Description
	m.TotalAmount = e.TotalAmount
	m.ReceivedAmount = e.ReceivedAmount
	m.RemainingAmount = e.RemainingAmount
	m.OverpaidAmount = e.OverpaidAmount
	m.BusinessDate = e.BusinessDate
	m.FromDomainSoftDelete(e.SoftDelete)
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}
