package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/voltshop/backend/internal/application/trade"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader names the header a client sends to make sale
// creation safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

const idempotencyKeyTTL = 24 * time.Hour

// SaleHandler handles point-of-sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
	idempotency shared.IdempotencyStore
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService, idempotency shared.IdempotencyStore) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		idempotency: idempotency,
	}
}

// NewCustomerRequest carries inline customer info for walk-in sales
type NewCustomerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CustomerType string `json:"customer_type" binding:"omitempty,oneof=INDIVIDUAL SHOPOWNER"`
	Contact      string `json:"contact" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Address      string `json:"address" binding:"max=500"`
}

// SaleItemRequest is one line in a sale request body
type SaleItemRequest struct {
	BatchID   string  `json:"purchase_item_id" binding:"required,uuid"`
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  int64   `json:"quantity" binding:"required,min=1"`
	SalePrice float64 `json:"sale_price" binding:"required,gt=0"`
}

// CreateSaleRequest is the request body for recording a sale. Exactly
// one of customer_id and new_customer must be set.
type CreateSaleRequest struct {
	CustomerID     string              `json:"customer_id" binding:"omitempty,uuid"`
	NewCustomer    *NewCustomerRequest `json:"new_customer"`
	BusinessDate   string              `json:"business_date" binding:"required"`
	PaymentMethod  string              `json:"payment_method" binding:"required"`
	Discount       float64             `json:"discount" binding:"omitempty,min=0"`
	ReceivedAmount float64             `json:"received_amount" binding:"omitempty,min=0"`
	Items          []SaleItemRequest   `json:"sale_items" binding:"required,min=1,dive"`
}

// UpdateSaleRequest is the request body for editing a sale's terms
type UpdateSaleRequest struct {
	BusinessDate   string  `json:"business_date"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	Discount       float64 `json:"discount" binding:"omitempty,min=0"`
	ReceivedAmount float64 `json:"received_amount" binding:"omitempty,min=0"`
}

// UpdateSaleItemRequest is the request body for changing a line quantity
type UpdateSaleItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.POST("", h.Create)
	sales.GET("", h.List)
	sales.GET("/:id", h.GetByID)
	sales.PUT("/:id", middleware.RequireAdmin(), h.Update)
	sales.DELETE("/:id", middleware.RequireAdmin(), h.Delete)

	items := rg.Group("/sale-items")
	items.PUT("/:id", middleware.RequireAdmin(), h.UpdateItem)
	items.DELETE("/:id", middleware.RequireAdmin(), h.DeleteItem)
}

// Create records a sale. When an Idempotency-Key header is present the
// key is claimed before the sale is written, so a network retry of the
// same request cannot consume stock twice.
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	businessDate, err := parseDate(req.BusinessDate)
	if err != nil {
		h.BadRequest(c, "Invalid business date, expected YYYY-MM-DD")
		return
	}

	appReq := tradeapp.CreateSaleRequest{
		BusinessDate:   businessDate,
		PaymentMethod:  trade.PaymentMethod(req.PaymentMethod),
		Discount:       req.Discount,
		ReceivedAmount: req.ReceivedAmount,
		Items:          make([]tradeapp.CreateSaleItemInput, 0, len(req.Items)),
	}

	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		appReq.CustomerID = &customerID
	}
	if req.NewCustomer != nil {
		appReq.NewCustomer = &tradeapp.NewCustomerInput{
			Name:         req.NewCustomer.Name,
			CustomerType: req.NewCustomer.CustomerType,
			Contact:      req.NewCustomer.Contact,
			Email:        req.NewCustomer.Email,
			Address:      req.NewCustomer.Address,
		}
	}

	for _, item := range req.Items {
		batchID, err := uuid.Parse(item.BatchID)
		if err != nil {
			h.BadRequest(c, "Invalid purchase item ID format")
			return
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.Items = append(appReq.Items, tradeapp.CreateSaleItemInput{
			BatchID:   batchID,
			ProductID: productID,
			Quantity:  item.Quantity,
			SalePrice: item.SalePrice,
		})
	}

	if key := c.GetHeader(IdempotencyKeyHeader); key != "" && h.idempotency != nil {
		firstUse, err := h.idempotency.MarkProcessed(c.Request.Context(), key, idempotencyKeyTTL)
		if err != nil {
			h.InternalError(c, "Failed to check idempotency key")
			return
		}
		if !firstUse {
			h.Conflict(c, "DUPLICATE_REQUEST", "A request with this idempotency key was already processed")
			return
		}
	}

	sale, err := h.saleService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID returns a sale with its lines
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns a paginated list of sales. Pass in_debt=true to list
// only sales with outstanding debt.
func (h *SaleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := buildFilter(req)
	filters := map[string]interface{}{}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filters["customer_id"] = id
	}
	if c.Query("in_debt") == "true" {
		filters["in_debt"] = true
	}
	if len(filters) > 0 {
		filter.Filters = filters
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.Limit())
}

// Update edits a sale's payment terms; the ledger entry follows
func (h *SaleHandler) Update(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	appReq := tradeapp.UpdateSaleRequest{
		PaymentMethod:  trade.PaymentMethod(req.PaymentMethod),
		Discount:       req.Discount,
		ReceivedAmount: req.ReceivedAmount,
	}
	if req.BusinessDate != "" {
		businessDate, err := parseDate(req.BusinessDate)
		if err != nil {
			h.BadRequest(c, "Invalid business date, expected YYYY-MM-DD")
			return
		}
		appReq.BusinessDate = &businessDate
	}

	sale, err := h.saleService.Update(c.Request.Context(), saleID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Delete soft-deletes a sale and returns its stock to the batches
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), saleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateItem changes a line's quantity, adjusting batch stock
func (h *SaleHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale item ID format")
		return
	}

	var req UpdateSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sale, err := h.saleService.UpdateItem(c.Request.Context(), itemID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// DeleteItem removes a line from a sale, returning its stock
func (h *SaleHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale item ID format")
		return
	}

	sale, err := h.saleService.DeleteItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}
