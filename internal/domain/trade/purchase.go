package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/shared"
)

// PaymentMethod represents how a purchase or sale was settled
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodCard          PaymentMethod = "CARD"
	PaymentMethodMobileBanking PaymentMethod = "MOBILE_BANKING"
	PaymentMethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobileBanking, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Purchase is one stock intake transaction from a supplier. TotalAmount
// always equals the sum of unitPrice * initialQuantity over the
// purchase's active batches; it is recomputed after every item change.
type Purchase struct {
	shared.BaseAggregateRoot
	SupplierID      uuid.UUID
	BusinessDate    time.Time
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	PaymentMethod   PaymentMethod
	ProofOfPurchase string
	shared.SoftDelete
}

// NewPurchase creates a new purchase for a supplier
func NewPurchase(supplierID uuid.UUID, businessDate time.Time, paymentMethod PaymentMethod, paidAmount decimal.Decimal, proofOfPurchase string) (*Purchase, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if businessDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if paidAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		BusinessDate:      businessDate,
		TotalAmount:       decimal.Zero,
		PaidAmount:        paidAmount,
		PaymentMethod:     paymentMethod,
		ProofOfPurchase:   proofOfPurchase,
		SoftDelete:        shared.NewSoftDelete(),
	}
	purchase.CreatedAt = businessDate
	return purchase, nil
}

// SetTotal replaces the purchase total after batch recomputation
func (p *Purchase) SetTotal(total decimal.Decimal) {
	p.TotalAmount = total
	p.Touch()
}

// UpdateTerms changes the settlement fields
func (p *Purchase) UpdateTerms(paymentMethod PaymentMethod, paidAmount decimal.Decimal, proofOfPurchase string) error {
	if !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if paidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	p.PaymentMethod = paymentMethod
	p.PaidAmount = paidAmount
	p.ProofOfPurchase = proofOfPurchase
	p.Touch()
	return nil
}

// RealignDate moves the purchase to a new business date. Child batches
// and warranties are realigned by the caller in the same transaction.
func (p *Purchase) RealignDate(businessDate time.Time) error {
	if businessDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	p.BusinessDate = businessDate
	p.CreatedAt = businessDate
	p.Touch()
	return nil
}

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, int64, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
}
