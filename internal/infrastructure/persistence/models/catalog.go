package models

import (
	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;index"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		SoftDelete: m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.FromDomainSoftDelete(c.SoftDelete)
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product entity. Code is
// the numeric SKU that prefixes every batch barcode for the product.
type ProductModel struct {
	BaseModel
	Code       string    `gorm:"type:varchar(13);not null;uniqueIndex"`
	Name       string    `gorm:"type:varchar(200);not null;index"`
	Brand      string    `gorm:"type:varchar(100)"`
	Model      string    `gorm:"type:varchar(100)"`
	AmpereHour int       `gorm:"not null;default:0"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	SoftDeleteModel
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Brand:      m.Brand,
		Model:      m.Model,
		AmpereHour: m.AmpereHour,
		CategoryID: m.CategoryID,
		SoftDelete: m.SoftDeleteModel.ToDomain(),
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Name = p.Name
	m.Brand = p.Brand
	m.Model = p.Model
	m.AmpereHour = p.AmpereHour
	m.CategoryID = p.CategoryID
	m.FromDomainSoftDelete(p.SoftDelete)
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
