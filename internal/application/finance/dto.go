package finance

import (
	"time"

	"github.com/voltshop/backend/internal/domain/finance"
)

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID              string    `json:"id"`
	EntityID        string    `json:"entity_id"`
	TransactionID   string    `json:"transaction_id"`
	Description     string    `json:"description"`
	TotalAmount     float64   `json:"total_amount"`
	ReceivedAmount  float64   `json:"received_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	OverpaidAmount  float64   `json:"overpaid_amount"`
	BusinessDate    time.Time `json:"business_date"`
	IsActive        bool      `json:"is_active"`
}

// ToLedgerEntryResponse converts a domain ledger entry to a response
func ToLedgerEntryResponse(e *finance.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID.String(),
		EntityID:        e.EntityID.String(),
		TransactionID:   e.TransactionID.String(),
		Description:     e.Description,
		TotalAmount:     e.TotalAmount.InexactFloat64(),
		ReceivedAmount:  e.ReceivedAmount.InexactFloat64(),
		RemainingAmount: e.RemainingAmount.InexactFloat64(),
		OverpaidAmount:  e.OverpaidAmount.InexactFloat64(),
		BusinessDate:    e.BusinessDate,
		IsActive:        e.IsActive,
	}
}

// EntityLedgerResponse aggregates an entity's ledger entries with its
// outstanding position
type EntityLedgerResponse struct {
	EntityID       string                `json:"entity_id"`
	Entries        []LedgerEntryResponse `json:"entries"`
	TotalRemaining float64               `json:"total_remaining"`
	TotalOverpaid  float64               `json:"total_overpaid"`
}
