package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
)

// EntityService handles customer and supplier master data
type EntityService struct {
	repo partner.EntityRepository
}

// NewEntityService creates a new entity service
func NewEntityService(repo partner.EntityRepository) *EntityService {
	return &EntityService{repo: repo}
}

// CreateCustomer registers a new customer
func (s *EntityService) CreateCustomer(ctx context.Context, req CreateEntityRequest) (*EntityResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Contact, req.Email, req.Address, partner.CustomerType(req.CustomerType))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToEntityResponse(customer)
	return &resp, nil
}

// CreateSupplier registers a new supplier
func (s *EntityService) CreateSupplier(ctx context.Context, req CreateEntityRequest) (*EntityResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Contact, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToEntityResponse(supplier)
	return &resp, nil
}

// GetByID returns one entity
func (s *EntityService) GetByID(ctx context.Context, id uuid.UUID) (*EntityResponse, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEntityResponse(entity)
	return &resp, nil
}

// ListByType returns a page of entities of the given type
func (s *EntityService) ListByType(ctx context.Context, entityType partner.EntityType, filter shared.Filter) ([]EntityResponse, int64, error) {
	if !entityType.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_TYPE", "Entity type must be CUSTOMER or SUPPLIER")
	}
	entities, total, err := s.repo.FindByType(ctx, entityType, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]EntityResponse, 0, len(entities))
	for i := range entities {
		responses = append(responses, ToEntityResponse(&entities[i]))
	}
	return responses, total, nil
}

// Update edits an entity's master-data fields. The customer type is
// applied only to customers.
func (s *EntityService) Update(ctx context.Context, id uuid.UUID, req UpdateEntityRequest) (*EntityResponse, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entity.UpdateContactInfo(req.Name, req.Contact, req.Email, req.Address); err != nil {
		return nil, err
	}
	if req.CustomerType != "" {
		if err := entity.SetCustomerType(partner.CustomerType(req.CustomerType)); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, err
	}
	resp := ToEntityResponse(entity)
	return &resp, nil
}

// Delete soft-deletes an entity. Its transactions and ledger entries
// remain.
func (s *EntityService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	entity.Deactivate(time.Now())
	return s.repo.Save(ctx, entity)
}
