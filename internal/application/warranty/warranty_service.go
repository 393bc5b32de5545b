package warranty

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/application/txn"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// WarrantyService drives the warranty and claim state machines. Claim
// quantity bounds are checked against the owning batch: a supplier
// claim can cover the whole intake, a customer claim only what was
// actually sold.
type WarrantyService struct {
	scope txn.Scope
}

// NewWarrantyService creates a new warranty service
func NewWarrantyService(scope txn.Scope) *WarrantyService {
	return &WarrantyService{scope: scope}
}

// CreateClaim files a claim against an active warranty and moves the
// warranty into the matching claimed state
func (s *WarrantyService) CreateClaim(ctx context.Context, req CreateClaimRequest) (*ClaimResponse, error) {
	var resp *ClaimResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Warranties().FindByID(ctx, req.WarrantyID)
		if err != nil {
			return err
		}

		now := time.Now()
		if w.ReconcileStatus(now) {
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return err
			}
		}

		claim, err := warranty.NewClaim(w, req.ClaimDate, req.Quantity, req.Details, req.Type, now)
		if err != nil {
			return err
		}

		eligible, err := eligibleQuantity(ctx, repos, w, req.Type)
		if err != nil {
			return err
		}
		if req.Quantity > eligible {
			return shared.NewDomainError("CLAIM_QUANTITY_EXCEEDED", "Claim quantity exceeds the eligible quantity")
		}

		if err := w.MarkClaimed(req.Type, now); err != nil {
			return err
		}
		if err := repos.Warranties().Save(ctx, w); err != nil {
			return err
		}
		if err := repos.Claims().Save(ctx, claim); err != nil {
			return err
		}

		c := ToClaimResponse(claim)
		resp = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// eligibleQuantity returns the upper bound for a claim against the
// warranty's owning batch. A supplier claim may cover the full intake;
// a customer claim only the units that left the shop.
func eligibleQuantity(ctx context.Context, repos txn.Repositories, w *warranty.Warranty, claimType warranty.ClaimType) (int64, error) {
	batchID, err := owningBatchID(ctx, repos, w)
	if err != nil {
		return 0, err
	}
	batch, err := repos.Batches().FindByID(ctx, batchID)
	if err != nil {
		return 0, err
	}
	if claimType == warranty.ClaimTypeSupplier {
		return batch.InitialQuantity, nil
	}
	return batch.SoldQuantity, nil
}

// owningBatchID resolves the batch behind the warranty, going through
// the sale line for customer-side warranties
func owningBatchID(ctx context.Context, repos txn.Repositories, w *warranty.Warranty) (uuid.UUID, error) {
	if w.BatchID != nil {
		return *w.BatchID, nil
	}
	sale, err := repos.Sales().FindByItemID(ctx, *w.SaleItemID)
	if err != nil {
		return uuid.Nil, err
	}
	for i := range sale.Items {
		if sale.Items[i].ID == *w.SaleItemID {
			return sale.Items[i].BatchID, nil
		}
	}
	return uuid.Nil, shared.ErrNotFound
}

// ResolveClaim settles a pending claim as resolved
func (s *WarrantyService) ResolveClaim(ctx context.Context, claimID uuid.UUID, resolveDate time.Time, detail string) (*ClaimResponse, error) {
	return s.settleClaim(ctx, claimID, func(claim *warranty.Claim) error {
		return claim.Resolve(resolveDate, detail)
	})
}

// RejectClaim settles a pending claim as rejected
func (s *WarrantyService) RejectClaim(ctx context.Context, claimID uuid.UUID, rejectDate time.Time, detail string) (*ClaimResponse, error) {
	return s.settleClaim(ctx, claimID, func(claim *warranty.Claim) error {
		return claim.Reject(rejectDate, detail)
	})
}

func (s *WarrantyService) settleClaim(ctx context.Context, claimID uuid.UUID, settle func(*warranty.Claim) error) (*ClaimResponse, error) {
	var resp *ClaimResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		claim, err := repos.Claims().FindByID(ctx, claimID)
		if err != nil {
			return err
		}
		if err := settle(claim); err != nil {
			return err
		}
		if err := repos.Claims().Save(ctx, claim); err != nil {
			return err
		}
		c := ToClaimResponse(claim)
		resp = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateClaim edits a pending claim, re-validating the date and
// quantity bounds against the warranty and its owning batch
func (s *WarrantyService) UpdateClaim(ctx context.Context, claimID uuid.UUID, req UpdateClaimRequest) (*ClaimResponse, error) {
	var resp *ClaimResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		claim, err := repos.Claims().FindByID(ctx, claimID)
		if err != nil {
			return err
		}
		w, err := repos.Warranties().FindByID(ctx, claim.WarrantyID)
		if err != nil {
			return err
		}

		eligible, err := eligibleQuantity(ctx, repos, w, claim.Type)
		if err != nil {
			return err
		}
		if req.Quantity > eligible {
			return shared.NewDomainError("CLAIM_QUANTITY_EXCEEDED", "Claim quantity exceeds the eligible quantity")
		}

		if err := claim.Update(w, req.ClaimDate, req.Quantity, req.Details); err != nil {
			return err
		}
		if err := repos.Claims().Save(ctx, claim); err != nil {
			return err
		}
		c := ToClaimResponse(claim)
		resp = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete soft-deletes a warranty. Its claims stay untouched as audit
// trail.
func (s *WarrantyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Warranties().FindByID(ctx, id)
		if err != nil {
			return err
		}
		w.Deactivate(time.Now())
		return repos.Warranties().Save(ctx, w)
	})
}

// GetByID returns a warranty with its claim history. An expiry
// discovered while reading is persisted.
func (s *WarrantyService) GetByID(ctx context.Context, id uuid.UUID) (*WarrantyResponse, error) {
	var resp *WarrantyResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Warranties().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if w.ReconcileStatus(time.Now()) {
			if err := repos.Warranties().Save(ctx, w); err != nil {
				return err
			}
		}
		claims, err := repos.Claims().FindByWarranty(ctx, w.ID)
		if err != nil {
			return err
		}
		r := ToWarrantyResponse(w, claims)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns a page of warranties with their claim histories
func (s *WarrantyService) List(ctx context.Context, filter shared.Filter) ([]WarrantyResponse, int64, error) {
	var (
		responses []WarrantyResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		warranties, count, err := repos.Warranties().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		now := time.Now()
		responses = make([]WarrantyResponse, 0, len(warranties))
		for i := range warranties {
			w := &warranties[i]
			if w.ReconcileStatus(now) {
				if err := repos.Warranties().Save(ctx, w); err != nil {
					return err
				}
			}
			claims, err := repos.Claims().FindByWarranty(ctx, w.ID)
			if err != nil {
				return err
			}
			responses = append(responses, ToWarrantyResponse(w, claims))
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}
