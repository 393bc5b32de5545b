package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/finance"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/domain/shared"
)

// LedgerService serves ledger read paths and entity master-data updates
// made through the ledger screens
type LedgerService struct {
	ledgerRepo finance.LedgerRepository
	entityRepo partner.EntityRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo finance.LedgerRepository, entityRepo partner.EntityRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		entityRepo: entityRepo,
	}
}

// ListBetween returns ledger entries whose business date falls in the
// given range
func (s *LedgerService) ListBetween(ctx context.Context, dateRange shared.DateRange, filter shared.Filter) ([]LedgerEntryResponse, int64, error) {
	entries, total, err := s.ledgerRepo.FindAllBetween(ctx, dateRange, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses, total, nil
}

// GetByEntity returns an entity's ledger entries and outstanding position
func (s *LedgerService) GetByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) (*EntityLedgerResponse, error) {
	if _, err := s.entityRepo.FindByID(ctx, entityID); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindByEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}

	response := &EntityLedgerResponse{
		EntityID: entityID.String(),
		Entries:  make([]LedgerEntryResponse, len(entries)),
	}
	remaining := decimal.Zero
	overpaid := decimal.Zero
	for i := range entries {
		response.Entries[i] = ToLedgerEntryResponse(&entries[i])
		if entries[i].IsActive {
			remaining = remaining.Add(entries[i].RemainingAmount)
			overpaid = overpaid.Add(entries[i].OverpaidAmount)
		}
	}
	response.TotalRemaining = remaining.InexactFloat64()
	response.TotalOverpaid = overpaid.InexactFloat64()
	return response, nil
}

// UpdateEntity updates an entity's master-data fields through the
// ledger screen. Derived amounts are not part of the update surface.
func (s *LedgerService) UpdateEntity(ctx context.Context, entityID uuid.UUID, name, contact, email, address string) error {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return err
	}
	if err := entity.UpdateContactInfo(name, contact, email, address); err != nil {
		return err
	}
	return s.entityRepo.Save(ctx, entity)
}
