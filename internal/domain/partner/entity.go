package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
)

// EntityType discriminates customers from suppliers in the shared registry
type EntityType string

const (
	EntityTypeCustomer EntityType = "CUSTOMER"
	EntityTypeSupplier EntityType = "SUPPLIER"
)

// IsValid checks if the type is a known EntityType
func (t EntityType) IsValid() bool {
	return t == EntityTypeCustomer || t == EntityTypeSupplier
}

// String returns the string representation of EntityType
func (t EntityType) String() string {
	return string(t)
}

// CustomerType classifies customers; it is empty for suppliers
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
	CustomerTypeShopOwner  CustomerType = "SHOPOWNER"
)

// IsValid checks if the type is a known CustomerType
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeIndividual || t == CustomerTypeShopOwner
}

// Entity is the unified customer/supplier master record.
// Type is immutable after creation; ledger entries, purchases and sales
// all reference exactly one Entity.
type Entity struct {
	shared.BaseAggregateRoot
	Name         string
	Type         EntityType
	CustomerType CustomerType
	Contact      string
	Email        string
	Address      string
	shared.SoftDelete
}

// NewCustomer creates a new customer entity
func NewCustomer(name, contact, email, address string, customerType CustomerType) (*Entity, error) {
	if customerType == "" {
		customerType = CustomerTypeIndividual
	}
	if !customerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type must be INDIVIDUAL or SHOPOWNER")
	}
	return newEntity(name, EntityTypeCustomer, customerType, contact, email, address)
}

// NewSupplier creates a new supplier entity
func NewSupplier(name, contact, email, address string) (*Entity, error) {
	return newEntity(name, EntityTypeSupplier, "", contact, email, address)
}

func newEntity(name string, entityType EntityType, customerType CustomerType, contact, email, address string) (*Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}

	return &Entity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              entityType,
		CustomerType:      customerType,
		Contact:           strings.TrimSpace(contact),
		Email:             strings.TrimSpace(email),
		Address:           strings.TrimSpace(address),
		SoftDelete:        shared.NewSoftDelete(),
	}, nil
}

// IsCustomer reports whether the entity is a customer
func (e *Entity) IsCustomer() bool {
	return e.Type == EntityTypeCustomer
}

// IsSupplier reports whether the entity is a supplier
func (e *Entity) IsSupplier() bool {
	return e.Type == EntityTypeSupplier
}

// UpdateContactInfo updates master-data fields. The type discriminant
// is not part of the update surface.
func (e *Entity) UpdateContactInfo(name, contact, email, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}

	e.Name = name
	e.Contact = strings.TrimSpace(contact)
	e.Email = strings.TrimSpace(email)
	e.Address = strings.TrimSpace(address)
	e.Touch()
	return nil
}

// SetCustomerType reclassifies a customer. Rejected for suppliers.
func (e *Entity) SetCustomerType(customerType CustomerType) error {
	if !e.IsCustomer() {
		return shared.NewDomainError("INVALID_STATE", "Customer type applies to customers only")
	}
	if !customerType.IsValid() {
		return shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type must be INDIVIDUAL or SHOPOWNER")
	}
	e.CustomerType = customerType
	e.Touch()
	return nil
}

// EntityRepository defines persistence operations for entities
type EntityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Entity, error)
	FindByType(ctx context.Context, entityType EntityType, filter shared.Filter) ([]Entity, int64, error)
	FindCustomerByContact(ctx context.Context, contact string) (*Entity, error)
	Save(ctx context.Context, entity *Entity) error
}
