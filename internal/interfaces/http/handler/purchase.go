package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/voltshop/backend/internal/application/trade"
	"github.com/voltshop/backend/internal/domain/trade"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
)

// PurchaseHandler handles stock intake endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseItemRequest is one batch in a purchase request body
type PurchaseItemRequest struct {
	ProductID        string  `json:"product_id" binding:"required,uuid"`
	Quantity         int64   `json:"quantity" binding:"required,min=1"`
	UnitPrice        float64 `json:"unit_price" binding:"required,gt=0"`
	SalePrice        float64 `json:"sale_price" binding:"required,gt=0"`
	RetailerWarranty int     `json:"retailer_warranty_duration" binding:"omitempty,min=0"`
	CustomerWarranty int     `json:"customer_warranty_duration" binding:"omitempty,min=0"`
}

// CreatePurchaseRequest is the request body for recording a purchase
type CreatePurchaseRequest struct {
	SupplierID      string                `json:"supplier_id" binding:"required,uuid"`
	BusinessDate    string                `json:"business_date" binding:"required"`
	PaymentMethod   string                `json:"payment_method" binding:"required"`
	PaidAmount      float64               `json:"paid_amount" binding:"omitempty,min=0"`
	ProofOfPurchase string                `json:"proof_of_purchase" binding:"max=500"`
	Items           []PurchaseItemRequest `json:"purchase_items" binding:"required,min=1,dive"`
}

// UpdatePurchaseRequest is the request body for editing a purchase's terms
type UpdatePurchaseRequest struct {
	BusinessDate    string  `json:"business_date"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	PaidAmount      float64 `json:"paid_amount" binding:"omitempty,min=0"`
	ProofOfPurchase string  `json:"proof_of_purchase" binding:"max=500"`
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	purchases.POST("", h.Create)
	purchases.GET("", h.List)
	purchases.GET("/:id", h.GetByID)
	purchases.PUT("/:id", middleware.RequireAdmin(), h.Update)
	purchases.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	purchases.POST("/:id/items", middleware.RequireAdmin(), h.AddItem)

	items := rg.Group("/purchase-items")
	items.PUT("/:id", middleware.RequireAdmin(), h.UpdateItem)
	items.DELETE("/:id", middleware.RequireAdmin(), h.DeleteItem)
}

func (h *PurchaseHandler) bindItem(req PurchaseItemRequest) (tradeapp.CreatePurchaseItemInput, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return tradeapp.CreatePurchaseItemInput{}, err
	}
	return tradeapp.CreatePurchaseItemInput{
		ProductID:        productID,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		SalePrice:        req.SalePrice,
		RetailerWarranty: req.RetailerWarranty,
		CustomerWarranty: req.CustomerWarranty,
	}, nil
}

// Create records a stock intake from a supplier
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	businessDate, err := parseDate(req.BusinessDate)
	if err != nil {
		h.BadRequest(c, "Invalid business date, expected YYYY-MM-DD")
		return
	}

	appReq := tradeapp.CreatePurchaseRequest{
		SupplierID:      supplierID,
		BusinessDate:    businessDate,
		PaymentMethod:   trade.PaymentMethod(req.PaymentMethod),
		PaidAmount:      req.PaidAmount,
		ProofOfPurchase: req.ProofOfPurchase,
		Items:           make([]tradeapp.CreatePurchaseItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		in, err := h.bindItem(item)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.Items = append(appReq.Items, in)
	}

	result, err := h.purchaseService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID returns a purchase with its batches
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List returns a paginated list of purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := buildFilter(req)
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		filter.Filters = map[string]interface{}{"supplier_id": id}
	}

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.Limit())
}

// Update edits a purchase's payment terms; the ledger entry follows
func (h *PurchaseHandler) Update(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	appReq := tradeapp.UpdatePurchaseRequest{
		PaymentMethod:   trade.PaymentMethod(req.PaymentMethod),
		PaidAmount:      req.PaidAmount,
		ProofOfPurchase: req.ProofOfPurchase,
	}
	if req.BusinessDate != "" {
		businessDate, err := parseDate(req.BusinessDate)
		if err != nil {
			h.BadRequest(c, "Invalid business date, expected YYYY-MM-DD")
			return
		}
		appReq.BusinessDate = &businessDate
	}

	purchase, err := h.purchaseService.Update(c.Request.Context(), purchaseID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete soft-deletes a purchase and its unsold batches
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), purchaseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem adds a batch to an existing purchase
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req PurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	in, err := h.bindItem(req)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	item, err := h.purchaseService.AddItem(c.Request.Context(), purchaseID, in)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateItem edits a batch's quantity, prices or warranty terms
func (h *PurchaseHandler) UpdateItem(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase item ID format")
		return
	}

	var req PurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	item, err := h.purchaseService.UpdateItem(c.Request.Context(), batchID, tradeapp.UpdatePurchaseItemRequest{
		ProductID:        productID,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		SalePrice:        req.SalePrice,
		RetailerWarranty: req.RetailerWarranty,
		CustomerWarranty: req.CustomerWarranty,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteItem soft-deletes an unsold batch
func (h *PurchaseHandler) DeleteItem(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase item ID format")
		return
	}

	if err := h.purchaseService.DeleteItem(c.Request.Context(), batchID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
