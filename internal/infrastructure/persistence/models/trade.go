package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/trade"
)

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	AggregateModel
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessDate    time.Time       `gorm:"type:date;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	ProofOfPurchase string          `gorm:"type:text"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	return &trade.Purchase{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SupplierID:        m.SupplierID,
		BusinessDate:      m.BusinessDate,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		PaymentMethod:     trade.PaymentMethod(m.PaymentMethod),
		ProofOfPurchase:   m.ProofOfPurchase,
		SoftDelete:        m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Purchase
func (m *PurchaseModel) FromDomain(p *trade.Purchase) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SupplierID = p.SupplierID
	m.BusinessDate = p.BusinessDate
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.PaymentMethod = string(p.PaymentMethod)
	m.ProofOfPurchase = p.ProofOfPurchase
	m.FromDomainSoftDelete(p.SoftDelete)
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessDate      time.Time       `gorm:"type:date;not null;index"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReceivedAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Discount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod     string          `gorm:"type:varchar(20);not null"`
	DebtRepaymentDate *time.Time      `gorm:"type:date;index"`
	Items             []SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale with its items
func (m *SaleModel) ToDomain() *trade.Sale {
	sale := &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		BusinessDate:      m.BusinessDate,
		TotalAmount:       m.TotalAmount,
		ReceivedAmount:    m.ReceivedAmount,
		Discount:          m.Discount,
		PaymentMethod:     trade.PaymentMethod(m.PaymentMethod),
		DebtRepaymentDate: m.DebtRepaymentDate,
		Items:             make([]trade.SaleItem, len(m.Items)),
		SoftDelete:        m.SoftDeleteModel.ToDomain(),
	}
	for i, item := range m.Items {
		sale.Items[i] = *item.ToDomain()
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.BusinessDate = s.BusinessDate
	m.TotalAmount = s.TotalAmount
	m.ReceivedAmount = s.ReceivedAmount
	m.Discount = s.Discount
	m.PaymentMethod = string(s.PaymentMethod)
	m.DebtRepaymentDate = s.DebtRepaymentDate
	m.FromDomainSoftDelete(s.SoftDelete)
	m.Items = make([]SaleItemModel, len(s.Items))
	for i := range s.Items {
		m.Items[i] = *SaleItemModelFromDomain(&s.Items[i])
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleItemModel is the persistence model for the SaleItem entity.
type SaleItemModel struct {
	BaseModel
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null"`
	SalePrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem
func (m *SaleItemModel) ToDomain() *trade.SaleItem {
	return &trade.SaleItem{
		BaseEntity: m.BaseModel.ToDomain(),
		SaleID:     m.SaleID,
		ProductID:  m.ProductID,
		BatchID:    m.BatchID,
		Quantity:   m.Quantity,
		SalePrice:  m.SalePrice,
		TotalPrice: m.TotalPrice,
		SoftDelete: m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain SaleItem
func (m *SaleItemModel) FromDomain(i *trade.SaleItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.SaleID = i.SaleID
	m.ProductID = i.ProductID
	m.BatchID = i.BatchID
	m.Quantity = i.Quantity
	m.SalePrice = i.SalePrice
	m.TotalPrice = i.TotalPrice
	m.FromDomainSoftDelete(i.SoftDelete)
}

// SaleItemModelFromDomain creates a new persistence model from a domain SaleItem
func SaleItemModelFromDomain(i *trade.SaleItem) *SaleItemModel {
	m := &SaleItemModel{}
	m.FromDomain(i)
	return m
}
