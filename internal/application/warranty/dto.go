package warranty

import (
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// CreateClaimRequest is the input for filing a claim against a warranty
type CreateClaimRequest struct {
	WarrantyID uuid.UUID
	ClaimDate  time.Time
	Quantity   int64
	Details    string
	Type       warranty.ClaimType
}

// UpdateClaimRequest is the input for editing a pending claim
type UpdateClaimRequest struct {
	ClaimDate time.Time
	Quantity  int64
	Details   string
}

// ClaimResponse represents a claim in API responses
type ClaimResponse struct {
	ID            string     `json:"id"`
	WarrantyID    string     `json:"warranty_id"`
	ClaimDate     time.Time  `json:"claim_date"`
	Quantity      int64      `json:"quantity"`
	Details       string     `json:"details"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	ResolveDate   *time.Time `json:"resolve_date,omitempty"`
	ResolveDetail string     `json:"resolve_detail,omitempty"`
	RejectDate    *time.Time `json:"reject_date,omitempty"`
	RejectDetail  string     `json:"reject_detail,omitempty"`
}

// ToClaimResponse converts a domain claim to a response
func ToClaimResponse(c *warranty.Claim) ClaimResponse {
	return ClaimResponse{
		ID:            c.ID.String(),
		WarrantyID:    c.WarrantyID.String(),
		ClaimDate:     c.ClaimDate,
		Quantity:      c.Quantity,
		Details:       c.Details,
		Type:          string(c.Type),
		Status:        string(c.Status),
		ResolveDate:   c.ResolveDate,
		ResolveDetail: c.ResolveDetail,
		RejectDate:    c.RejectDate,
		RejectDetail:  c.RejectDetail,
	}
}

// WarrantyResponse represents a warranty with its claim history
type WarrantyResponse struct {
	ID               string          `json:"id"`
	BatchID          *string         `json:"purchase_item_id,omitempty"`
	SaleItemID       *string         `json:"sale_item_id,omitempty"`
	RetailerDuration int             `json:"retailer_warranty_duration"`
	CustomerDuration int             `json:"customer_warranty_duration"`
	Status           string          `json:"status"`
	StartDate        time.Time       `json:"start_date"`
	ExpiresAt        time.Time       `json:"expires_at"`
	IsActive         bool            `json:"is_active"`
	Claims           []ClaimResponse `json:"claims"`
}

// ToWarrantyResponse converts a warranty and its claims to a response
func ToWarrantyResponse(w *warranty.Warranty, claims []warranty.Claim) WarrantyResponse {
	claimResponses := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		claimResponses = append(claimResponses, ToClaimResponse(&claims[i]))
	}
	resp := WarrantyResponse{
		ID:               w.ID.String(),
		RetailerDuration: w.RetailerDuration,
		CustomerDuration: w.CustomerDuration,
		Status:           string(w.Status),
		StartDate:        w.StartDate,
		ExpiresAt:        w.ExpiresAt(),
		IsActive:         w.IsActive,
		Claims:           claimResponses,
	}
	if w.BatchID != nil {
		s := w.BatchID.String()
		resp.BatchID = &s
	}
	if w.SaleItemID != nil {
		s := w.SaleItemID.String()
		resp.SaleItemID = &s
	}
	return resp
}
