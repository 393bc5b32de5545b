package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/voltshop/backend/internal/domain/inventory"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/domain/warranty"
)

// CreatePurchaseItemInput is one batch in a purchase creation request
type CreatePurchaseItemInput struct {
	ProductID        uuid.UUID
	Quantity         int64
	UnitPrice        float64
	SalePrice        float64
	RetailerWarranty int // months, 0 = none
	CustomerWarranty int // months, 0 = none
}

// CreatePurchaseRequest is the input for creating a purchase
type CreatePurchaseRequest struct {
	SupplierID      uuid.UUID
	BusinessDate    time.Time
	PaymentMethod   trade.PaymentMethod
	PaidAmount      float64
	ProofOfPurchase string
	Items           []CreatePurchaseItemInput
}

// UpdatePurchaseRequest is the input for updating a purchase's terms
type UpdatePurchaseRequest struct {
	BusinessDate    *time.Time
	PaymentMethod   trade.PaymentMethod
	PaidAmount      float64
	ProofOfPurchase string
}

// UpdatePurchaseItemRequest is the input for editing a batch
type UpdatePurchaseItemRequest struct {
	ProductID        uuid.UUID
	Quantity         int64
	UnitPrice        float64
	SalePrice        float64
	RetailerWarranty int
	CustomerWarranty int
}

// WarrantyResponse represents a warranty in API responses
type WarrantyResponse struct {
	ID               string     `json:"id"`
	BatchID          *string    `json:"purchase_item_id,omitempty"`
	SaleItemID       *string    `json:"sale_item_id,omitempty"`
	RetailerDuration int        `json:"retailer_warranty_duration"`
	CustomerDuration int        `json:"customer_warranty_duration"`
	Status           string     `json:"status"`
	StartDate        time.Time  `json:"start_date"`
	ExpiresAt        time.Time  `json:"expires_at"`
	IsActive         bool       `json:"is_active"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// ToWarrantyResponse converts a domain warranty to a response
func ToWarrantyResponse(w *warranty.Warranty) WarrantyResponse {
	resp := WarrantyResponse{
		ID:               w.ID.String(),
		RetailerDuration: w.RetailerDuration,
		CustomerDuration: w.CustomerDuration,
		Status:           string(w.Status),
		StartDate:        w.StartDate,
		ExpiresAt:        w.ExpiresAt(),
		IsActive:         w.IsActive,
		DeletedAt:        w.DeletedAt,
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

// PurchaseItemResponse represents a batch in API responses
type PurchaseItemResponse struct {
	ID              string            `json:"id"`
	PurchaseID      string            `json:"purchase_id"`
	ProductID       string            `json:"product_id"`
	InitialQuantity int64             `json:"initial_quantity"`
	SoldQuantity    int64             `json:"sold_quantity"`
	UnitPrice       float64           `json:"unit_price"`
	SalePrice       float64           `json:"sale_price"`
	Barcode         string            `json:"barcode"`
	BusinessDate    time.Time         `json:"business_date"`
	IsActive        bool              `json:"is_active"`
	Warranty        *WarrantyResponse `json:"warranty,omitempty"`
}

// ToPurchaseItemResponse converts a batch and its optional warranty
func ToPurchaseItemResponse(b *inventory.Batch, w *warranty.Warranty) PurchaseItemResponse {
	resp := PurchaseItemResponse{
		ID:              b.ID.String(),
		PurchaseID:      b.PurchaseID.String(),
		ProductID:       b.ProductID.String(),
		InitialQuantity: b.InitialQuantity,
		SoldQuantity:    b.SoldQuantity,
		UnitPrice:       b.UnitPrice.InexactFloat64(),
		SalePrice:       b.SalePrice.InexactFloat64(),
		Barcode:         b.Barcode,
		BusinessDate:    b.BusinessDate,
		IsActive:        b.IsActive,
	}
	if w != nil {
		wr := ToWarrantyResponse(w)
		resp.Warranty = &wr
	}
	return resp
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID              string                 `json:"id"`
	SupplierID      string                 `json:"supplier_id"`
	BusinessDate    time.Time              `json:"business_date"`
	TotalAmount     float64                `json:"total_amount"`
	PaidAmount      float64                `json:"paid_amount"`
	PaymentMethod   string                 `json:"payment_method"`
	ProofOfPurchase string                 `json:"proof_of_purchase,omitempty"`
	IsActive        bool                   `json:"is_active"`
	Items           []PurchaseItemResponse `json:"purchase_items"`
}

// ToPurchaseResponse converts a purchase and its batches
func ToPurchaseResponse(p *trade.Purchase, items []PurchaseItemResponse) PurchaseResponse {
	if items == nil {
		items = make([]PurchaseItemResponse, 0)
	}
	return PurchaseResponse{
		ID:              p.ID.String(),
		SupplierID:      p.SupplierID.String(),
		BusinessDate:    p.BusinessDate,
		TotalAmount:     p.TotalAmount.InexactFloat64(),
		PaidAmount:      p.PaidAmount.InexactFloat64(),
		PaymentMethod:   string(p.PaymentMethod),
		ProofOfPurchase: p.ProofOfPurchase,
		IsActive:        p.IsActive,
		Items:           items,
	}
}

// NewCustomerInput carries inline customer info when a sale is made to
// a customer not yet in the registry
type NewCustomerInput struct {
	Name         string
	CustomerType string
	Contact      string
	Email        string
	Address      string
}

// CreateSaleItemInput is one line in a sale creation request
type CreateSaleItemInput struct {
	BatchID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	SalePrice float64
}

// CreateSaleRequest is the input for creating a sale
type CreateSaleRequest struct {
	CustomerID     *uuid.UUID
	NewCustomer    *NewCustomerInput
	BusinessDate   time.Time
	PaymentMethod  trade.PaymentMethod
	Discount       float64
	ReceivedAmount float64
	Items          []CreateSaleItemInput
}

// UpdateSaleRequest is the input for updating a sale's terms
type UpdateSaleRequest struct {
	BusinessDate   *time.Time
	PaymentMethod  trade.PaymentMethod
	Discount       float64
	ReceivedAmount float64
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID         string            `json:"id"`
	SaleID     string            `json:"sale_id"`
	ProductID  string            `json:"product_id"`
	BatchID    string            `json:"purchase_item_id"`
	Quantity   int64             `json:"quantity"`
	SalePrice  float64           `json:"sale_price"`
	TotalPrice float64           `json:"total_price"`
	IsActive   bool              `json:"is_active"`
	Warranty   *WarrantyResponse `json:"warranty,omitempty"`
}

// ToSaleItemResponse converts a sale line and its optional warranty
func ToSaleItemResponse(i *trade.SaleItem, w *warranty.Warranty) SaleItemResponse {
	resp := SaleItemResponse{
		ID:         i.ID.String(),
		SaleID:     i.SaleID.String(),
		ProductID:  i.ProductID.String(),
		BatchID:    i.BatchID.String(),
		Quantity:   i.Quantity,
		SalePrice:  i.SalePrice.InexactFloat64(),
		TotalPrice: i.TotalPrice.InexactFloat64(),
		IsActive:   i.IsActive,
	}
	if w != nil {
		wr := ToWarrantyResponse(w)
		resp.Warranty = &wr
	}
	return resp
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID                string             `json:"id"`
	CustomerID        string             `json:"customer_id"`
	BusinessDate      time.Time          `json:"business_date"`
	TotalAmount       float64            `json:"total_amount"`
	ReceivedAmount    float64            `json:"received_amount"`
	Discount          float64            `json:"discount"`
	Debt              float64            `json:"debt"`
	PaymentMethod     string             `json:"payment_method"`
	DebtRepaymentDate *time.Time         `json:"debt_repayment_date,omitempty"`
	IsActive          bool               `json:"is_active"`
	Items             []SaleItemResponse `json:"sale_items"`
}

// ToSaleResponse converts a sale and its lines
func ToSaleResponse(s *trade.Sale, items []SaleItemResponse) SaleResponse {
	if items == nil {
		items = make([]SaleItemResponse, 0)
	}
	return SaleResponse{
		ID:                s.ID.String(),
		CustomerID:        s.CustomerID.String(),
		BusinessDate:      s.BusinessDate,
		TotalAmount:       s.TotalAmount.InexactFloat64(),
		ReceivedAmount:    s.ReceivedAmount.InexactFloat64(),
		Discount:          s.Discount.InexactFloat64(),
		Debt:              s.Debt().InexactFloat64(),
		PaymentMethod:     string(s.PaymentMethod),
		DebtRepaymentDate: s.DebtRepaymentDate,
		IsActive:          s.IsActive,
		Items:             items,
	}
}
