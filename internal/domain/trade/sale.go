package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voltshop/backend/internal/domain/shared"
)

// DebtTermDays is the grace period granted on an unpaid remainder
const DebtTermDays = 30

// SaleItem is one line sold from a specific stock batch
type SaleItem struct {
	shared.BaseEntity
	SaleID     uuid.UUID
	ProductID  uuid.UUID
	BatchID    uuid.UUID
	Quantity   int64
	SalePrice  decimal.Decimal
	TotalPrice decimal.Decimal
	shared.SoftDelete
}

// NewSaleItem creates a new sale line drawing from the given batch
func NewSaleItem(saleID, productID, batchID uuid.UUID, quantity int64, salePrice decimal.Decimal, businessDate time.Time) (*SaleItem, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	item := &SaleItem{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		ProductID:  productID,
		BatchID:    batchID,
		Quantity:   quantity,
		SalePrice:  salePrice,
		TotalPrice: salePrice.Mul(decimal.NewFromInt(quantity)),
		SoftDelete: shared.NewSoftDelete(),
	}
	item.CreatedAt = businessDate
	return item, nil
}

// UpdateQuantity changes the line quantity and recomputes its total
func (i *SaleItem) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.TotalPrice = i.SalePrice.Mul(decimal.NewFromInt(quantity))
	i.Touch()
	return nil
}

// RealignDate moves the line to a new business date, propagated from
// the parent sale
func (i *SaleItem) RealignDate(businessDate time.Time) {
	i.CreatedAt = businessDate
	i.Touch()
}

// Sale is one checkout transaction for a customer. DebtRepaymentDate is
// set only while receivedAmount < totalAmount - discount.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID        uuid.UUID
	BusinessDate      time.Time
	TotalAmount       decimal.Decimal
	ReceivedAmount    decimal.Decimal
	Discount          decimal.Decimal
	PaymentMethod     PaymentMethod
	DebtRepaymentDate *time.Time
	Items             []SaleItem
	shared.SoftDelete
}

// NewSale creates a new sale for a customer
func NewSale(customerID uuid.UUID, businessDate time.Time, paymentMethod PaymentMethod, discount, receivedAmount decimal.Decimal) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if businessDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Discount cannot be negative")
	}
	if receivedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Received amount cannot be negative")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		BusinessDate:      businessDate,
		TotalAmount:       decimal.Zero,
		ReceivedAmount:    receivedAmount,
		Discount:          discount,
		PaymentMethod:     paymentMethod,
		Items:             make([]SaleItem, 0),
		SoftDelete:        shared.NewSoftDelete(),
	}
	sale.CreatedAt = businessDate
	return sale, nil
}

// AddItem creates a sale line and appends it to the sale
func (s *Sale) AddItem(productID, batchID uuid.UUID, quantity int64, salePrice decimal.Decimal) (*SaleItem, error) {
	item, err := NewSaleItem(s.ID, productID, batchID, quantity, salePrice, s.BusinessDate)
	if err != nil {
		return nil, err
	}
	s.Items = append(s.Items, *item)
	return &s.Items[len(s.Items)-1], nil
}

// ActiveItems returns the sale lines that are not soft-deleted
func (s *Sale) ActiveItems() []SaleItem {
	active := make([]SaleItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active
}

// RecalculateTotal recomputes TotalAmount from the active lines
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for i := range s.Items {
		if !s.Items[i].IsActive {
			continue
		}
		total = total.Add(s.Items[i].TotalPrice)
	}
	s.TotalAmount = total
	s.Touch()
}

// Debt returns the unpaid remainder, never negative
func (s *Sale) Debt() decimal.Decimal {
	debt := s.TotalAmount.Sub(s.Discount).Sub(s.ReceivedAmount)
	if debt.IsNegative() {
		return decimal.Zero
	}
	return debt
}

// RefreshDebtSchedule reconciles DebtRepaymentDate with the current
// debt: a newly indebted sale gets businessDate + 30 days, a sale still
// in debt keeps its existing date, a cleared debt drops the date.
func (s *Sale) RefreshDebtSchedule() {
	if s.Debt().IsPositive() {
		if s.DebtRepaymentDate == nil {
			due := s.BusinessDate.AddDate(0, 0, DebtTermDays)
			s.DebtRepaymentDate = &due
		}
		return
	}
	s.DebtRepaymentDate = nil
}

// UpdateTerms changes the settlement fields and reconciles the debt
// schedule against the new amounts
func (s *Sale) UpdateTerms(paymentMethod PaymentMethod, discount, receivedAmount decimal.Decimal) error {
	if !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if discount.IsNegative() || receivedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	if discount.GreaterThan(s.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount cannot exceed the sale total")
	}
	s.PaymentMethod = paymentMethod
	s.Discount = discount
	s.ReceivedAmount = receivedAmount
	s.RefreshDebtSchedule()
	s.Touch()
	return nil
}

// RealignDate moves the sale and all its active lines to a new business
// date. A pending repayment date shifts with it.
func (s *Sale) RealignDate(businessDate time.Time) error {
	if businessDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	s.BusinessDate = businessDate
	s.CreatedAt = businessDate
	if s.DebtRepaymentDate != nil {
		due := businessDate.AddDate(0, 0, DebtTermDays)
		s.DebtRepaymentDate = &due
	}
	for i := range s.Items {
		if s.Items[i].IsActive {
			s.Items[i].RealignDate(businessDate)
		}
	}
	s.Touch()
	return nil
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, int64, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)
	// FindByItemID loads the sale owning the given sale item, with items.
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*Sale, error)
	Save(ctx context.Context, sale *Sale) error
}
