package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
)

var productCodePattern = regexp.MustCompile(`^[0-9]{3,13}$`)

// Product is a catalog item. Code is the numeric SKU used as the prefix
// of every batch barcode for this product.
type Product struct {
	shared.BaseEntity
	Code       string
	Name       string
	Brand      string
	Model      string
	AmpereHour int
	CategoryID uuid.UUID
	shared.SoftDelete
}

// NewProduct creates a new product
func NewProduct(code, name, brand, model string, ampereHour int, categoryID uuid.UUID) (*Product, error) {
	if !productCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code must be 3 to 13 digits")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if ampereHour < 0 {
		return nil, shared.NewDomainError("INVALID_AMPERE_HOUR", "Ampere-hour rating cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Brand:      strings.TrimSpace(brand),
		Model:      strings.TrimSpace(model),
		AmpereHour: ampereHour,
		CategoryID: categoryID,
		SoftDelete: shared.NewSoftDelete(),
	}, nil
}

// Update changes the product's descriptive fields. The code is immutable
// because existing batch barcodes embed it.
func (p *Product) Update(name, brand, model string, ampereHour int, categoryID uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if ampereHour < 0 {
		return shared.NewDomainError("INVALID_AMPERE_HOUR", "Ampere-hour rating cannot be negative")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	p.Name = name
	p.Brand = strings.TrimSpace(brand)
	p.Model = strings.TrimSpace(model)
	p.AmpereHour = ampereHour
	p.CategoryID = categoryID
	p.Touch()
	return nil
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	SaveAll(ctx context.Context, products []Product) error
}
