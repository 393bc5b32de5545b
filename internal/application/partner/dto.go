package partner

import (
	"time"

	"github.com/voltshop/backend/internal/domain/partner"
)

// CreateEntityRequest is the input for registering a customer or
// supplier
type CreateEntityRequest struct {
	Name         string
	CustomerType string
	Contact      string
	Email        string
	Address      string
}

// UpdateEntityRequest is the input for editing master-data fields
type UpdateEntityRequest struct {
	Name         string
	CustomerType string
	Contact      string
	Email        string
	Address      string
}

// EntityResponse represents a customer or supplier in API responses
type EntityResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	CustomerType string    `json:"customer_type,omitempty"`
	Contact      string    `json:"contact,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToEntityResponse converts a domain entity to a response
func ToEntityResponse(e *partner.Entity) EntityResponse {
	return EntityResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Type:         e.Type.String(),
		CustomerType: string(e.CustomerType),
		Contact:      e.Contact,
		Email:        e.Email,
		Address:      e.Address,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
	}
}
