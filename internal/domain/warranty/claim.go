package warranty

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/shared"
)

// ClaimType identifies who is claiming: the shop against its supplier,
// or a customer against the shop
type ClaimType string

const (
	ClaimTypeCustomer ClaimType = "CUSTOMER"
	ClaimTypeSupplier ClaimType = "SUPPLIER"
)

// IsValid checks if the type is a known ClaimType
func (t ClaimType) IsValid() bool {
	return t == ClaimTypeCustomer || t == ClaimTypeSupplier
}

// ClaimStatus represents the claim sub-state
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"
	ClaimStatusResolved ClaimStatus = "RESOLVED"
	ClaimStatusRejected ClaimStatus = "REJECTED"
)

// IsTerminal reports whether the status permits no further transitions
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusResolved || s == ClaimStatusRejected
}

// Claim is one warranty-claim event. RESOLVED and REJECTED are terminal:
// any edit or re-resolution of a non-PENDING claim is rejected.
type Claim struct {
	shared.BaseEntity
	WarrantyID    uuid.UUID
	ClaimDate     time.Time
	Quantity      int64
	Details       string
	Type          ClaimType
	Status        ClaimStatus
	ResolveDate   *time.Time
	ResolveDetail string
	RejectDate    *time.Time
	RejectDetail  string
	shared.SoftDelete
}

// NewClaim creates a PENDING claim against a warranty. Quantity bounds
// against the owning batch are validated by the caller, which knows the
// batch; date bounds against the warranty start are validated here.
func NewClaim(w *Warranty, claimDate time.Time, quantity int64, details string, claimType ClaimType, now time.Time) (*Claim, error) {
	if w == nil {
		return nil, shared.NewDomainError("INVALID_WARRANTY", "Warranty cannot be nil")
	}
	if !claimType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CLAIM_TYPE", "Claim type must be CUSTOMER or SUPPLIER")
	}
	if w.DeriveStatus(now) != StatusActive {
		return nil, shared.NewDomainError("WARRANTY_NOT_ACTIVE", "Claims require an active warranty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Claim quantity must be positive")
	}
	if claimDate.Before(w.StartDate) {
		return nil, shared.NewDomainError("INVALID_CLAIM_DATE", "Claim date cannot precede the warranty start")
	}
	if strings.TrimSpace(details) == "" {
		return nil, shared.NewDomainError("INVALID_DETAILS", "Claim details cannot be empty")
	}

	return &Claim{
		BaseEntity: shared.NewBaseEntity(),
		WarrantyID: w.ID,
		ClaimDate:  claimDate,
		Quantity:   quantity,
		Details:    strings.TrimSpace(details),
		Type:       claimType,
		Status:     ClaimStatusPending,
		SoftDelete: shared.NewSoftDelete(),
	}, nil
}

// Resolve transitions a PENDING claim to RESOLVED
func (c *Claim) Resolve(resolveDate time.Time, detail string) error {
	if c.Status != ClaimStatusPending {
		return shared.NewDomainError("CLAIM_NOT_PENDING", "Claim has already been settled")
	}
	if resolveDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Resolve date cannot be empty")
	}
	if strings.TrimSpace(detail) == "" {
		return shared.NewDomainError("INVALID_DETAILS", "Resolve detail cannot be empty")
	}
	c.Status = ClaimStatusResolved
	c.ResolveDate = &resolveDate
	c.ResolveDetail = strings.TrimSpace(detail)
	c.Touch()
	return nil
}

// Reject transitions a PENDING claim to REJECTED
func (c *Claim) Reject(rejectDate time.Time, detail string) error {
	if c.Status != ClaimStatusPending {
		return shared.NewDomainError("CLAIM_NOT_PENDING", "Claim has already been settled")
	}
	if rejectDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Reject date cannot be empty")
	}
	if strings.TrimSpace(detail) == "" {
		return shared.NewDomainError("INVALID_DETAILS", "Reject detail cannot be empty")
	}
	c.Status = ClaimStatusRejected
	c.RejectDate = &rejectDate
	c.RejectDetail = strings.TrimSpace(detail)
	c.Touch()
	return nil
}

// Update edits a PENDING claim's date, quantity and details. The
// quantity bound re-validation against the batch is done by the caller.
func (c *Claim) Update(w *Warranty, claimDate time.Time, quantity int64, details string) error {
	if c.Status != ClaimStatusPending {
		return shared.NewDomainError("CLAIM_NOT_PENDING", "Only pending claims can be edited")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Claim quantity must be positive")
	}
	if claimDate.Before(w.StartDate) {
		return shared.NewDomainError("INVALID_CLAIM_DATE", "Claim date cannot precede the warranty start")
	}
	if strings.TrimSpace(details) == "" {
		return shared.NewDomainError("INVALID_DETAILS", "Claim details cannot be empty")
	}
	c.ClaimDate = claimDate
	c.Quantity = quantity
	c.Details = strings.TrimSpace(details)
	c.Touch()
	return nil
}

// ClaimRepository defines persistence operations for claims
type ClaimRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	FindByWarranty(ctx context.Context, warrantyID uuid.UUID) ([]Claim, error)
	Save(ctx context.Context, claim *Claim) error
}
