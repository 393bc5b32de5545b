package catalog

import (
	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/catalog"
)

// CreateProductRequest is the input for adding a catalog item
type CreateProductRequest struct {
	Code       string
	Name       string
	Brand      string
	Model      string
	AmpereHour int
	CategoryID uuid.UUID
}

// UpdateProductRequest is the input for editing a catalog item. The
// code is immutable since batch barcodes embed it.
type UpdateProductRequest struct {
	Name       string
	Brand      string
	Model      string
	AmpereHour int
	CategoryID uuid.UUID
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		IsActive: c.IsActive,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Brand      string `json:"brand,omitempty"`
	Model      string `json:"model,omitempty"`
	AmpereHour int    `json:"ampere_hour,omitempty"`
	CategoryID string `json:"category_id"`
	IsActive   bool   `json:"is_active"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID.String(),
		Code:       p.Code,
		Name:       p.Name,
		Brand:      p.Brand,
		Model:      p.Model,
		AmpereHour: p.AmpereHour,
		CategoryID: p.CategoryID.String(),
		IsActive:   p.IsActive,
	}
}

// ProductAvailability pairs a product with its sellable stock summed
// over active batches
type ProductAvailability struct {
	Product   ProductResponse `json:"product"`
	Available int64           `json:"available"`
}
