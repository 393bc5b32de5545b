package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/catalog"
	"github.com/voltshop/backend/internal/domain/shared"
)

// CatalogService handles categories, products and the stock
// availability read model
type CatalogService struct {
	scope txn.Scope
}

// NewCatalogService creates a new catalog service
func NewCatalogService(scope txn.Scope) *CatalogService {
	return &CatalogService{scope: scope}
}

// CreateCategory adds a new category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*CategoryResponse, error) {
	var resp *CategoryResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		category, err := catalog.NewCategory(name)
		if err != nil {
			return err
		}
		if err := repos.Categories().Save(ctx, category); err != nil {
			return err
		}
		r := ToCategoryResponse(category)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RenameCategory changes a category's name
func (s *CatalogService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*CategoryResponse, error) {
	var resp *CategoryResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := category.Rename(name); err != nil {
			return err
		}
		if err := repos.Categories().Save(ctx, category); err != nil {
			return err
		}
		r := ToCategoryResponse(category)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListCategories returns the categories matching the filter
func (s *CatalogService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	var responses []CategoryResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		categories, err := repos.Categories().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			responses = append(responses, ToCategoryResponse(&categories[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// DeleteCategory soft-deletes a category and cascades to its products
// in one transaction
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		products, err := repos.Products().FindByCategory(ctx, category.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range products {
			products[i].Deactivate(now)
		}
		if len(products) > 0 {
			if err := repos.Products().SaveAll(ctx, products); err != nil {
				return err
			}
		}

		category.Deactivate(now)
		return repos.Categories().Save(ctx, category)
	})
}

// CreateProduct adds a catalog item under an existing category
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var resp *ProductResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Categories().FindByID(ctx, req.CategoryID); err != nil {
			return err
		}
		if _, err := repos.Products().FindByCode(ctx, req.Code); err == nil {
			return shared.ErrAlreadyExists
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		product, err := catalog.NewProduct(req.Code, req.Name, req.Brand, req.Model, req.AmpereHour, req.CategoryID)
		if err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		r := ToProductResponse(product)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateProduct edits a product's describing fields. The code stays
// fixed because existing barcodes embed it.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var resp *ProductResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.CategoryID != product.CategoryID {
			if _, err := repos.Categories().FindByID(ctx, req.CategoryID); err != nil {
				return err
			}
		}
		if err := product.Update(req.Name, req.Brand, req.Model, req.AmpereHour, req.CategoryID); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		r := ToProductResponse(product)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	var resp *ProductResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		r := ToProductResponse(product)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListProducts returns a page of products
func (s *CatalogService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	var (
		responses []ProductResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		products, count, err := repos.Products().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, ToProductResponse(&products[i]))
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListAvailability returns every product in the page with its sellable
// quantity summed over active batches
func (s *CatalogService) ListAvailability(ctx context.Context, filter shared.Filter) ([]ProductAvailability, error) {
	var responses []ProductAvailability
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		products, _, err := repos.Products().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		availability, err := repos.Batches().AvailabilityByProduct(ctx)
		if err != nil {
			return err
		}
		responses = make([]ProductAvailability, 0, len(products))
		for i := range products {
			responses = append(responses, ProductAvailability{
				Product:   ToProductResponse(&products[i]),
				Available: availability[products[i].ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
