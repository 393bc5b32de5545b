package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warrantyapp "github.com/voltshop/backend/internal/application/warranty"
	"github.com/voltshop/backend/internal/domain/warranty"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
)

// WarrantyHandler handles warranty and claim endpoints
type WarrantyHandler struct {
	BaseHandler
	warrantyService *warrantyapp.WarrantyService
}

// NewWarrantyHandler creates a new WarrantyHandler
func NewWarrantyHandler(warrantyService *warrantyapp.WarrantyService) *WarrantyHandler {
	return &WarrantyHandler{warrantyService: warrantyService}
}

// CreateClaimRequest is the request body for filing a claim
type CreateClaimRequest struct {
	WarrantyID string `json:"warranty_id" binding:"required,uuid"`
	ClaimDate  string `json:"claim_date" binding:"required"`
	Quantity   int64  `json:"quantity" binding:"required,min=1"`
	Details    string `json:"details" binding:"required,min=1,max=1000"`
	Type       string `json:"type" binding:"required,oneof=CUSTOMER SUPPLIER"`
}

// UpdateClaimRequest is the request body for editing a pending claim
type UpdateClaimRequest struct {
	ClaimDate string `json:"claim_date" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Details   string `json:"details" binding:"required,min=1,max=1000"`
}

// SettleClaimRequest is the request body for resolving or rejecting a
// claim
type SettleClaimRequest struct {
	Date   string `json:"date" binding:"required"`
	Detail string `json:"detail" binding:"required,min=1,max=1000"`
}

// RegisterRoutes registers warranty and claim routes
func (h *WarrantyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warranties := rg.Group("/warranties")
	warranties.GET("", h.List)
	warranties.GET("/:id", h.GetByID)
	warranties.DELETE("/:id", middleware.RequireAdmin(), h.Delete)

	claims := rg.Group("/claims")
	claims.POST("", h.CreateClaim)
	claims.PUT("/:id", h.UpdateClaim)
	claims.POST("/:id/resolve", h.ResolveClaim)
	claims.POST("/:id/reject", h.RejectClaim)
}

// List returns a paginated list of warranties. Pass status to filter
// on warranty state.
func (h *WarrantyHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := buildFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	warranties, total, err := h.warrantyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, warranties, total, filter.Page, filter.Limit())
}

// GetByID returns a warranty with its claim history
func (h *WarrantyHandler) GetByID(c *gin.Context) {
	warrantyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warranty ID format")
		return
	}

	resp, err := h.warrantyService.GetByID(c.Request.Context(), warrantyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete soft-deletes a warranty; its claims are kept for history
func (h *WarrantyHandler) Delete(c *gin.Context) {
	warrantyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warranty ID format")
		return
	}

	if err := h.warrantyService.Delete(c.Request.Context(), warrantyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateClaim files a claim against an active warranty
func (h *WarrantyHandler) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	warrantyID, err := uuid.Parse(req.WarrantyID)
	if err != nil {
		h.BadRequest(c, "Invalid warranty ID format")
		return
	}

	claimDate, err := parseDate(req.ClaimDate)
	if err != nil {
		h.BadRequest(c, "Invalid claim date, expected YYYY-MM-DD")
		return
	}

	claim, err := h.warrantyService.CreateClaim(c.Request.Context(), warrantyapp.CreateClaimRequest{
		WarrantyID: warrantyID,
		ClaimDate:  claimDate,
		Quantity:   req.Quantity,
		Details:    req.Details,
		Type:       warranty.ClaimType(req.Type),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, claim)
}

// UpdateClaim edits a pending claim
func (h *WarrantyHandler) UpdateClaim(c *gin.Context) {
	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid claim ID format")
		return
	}

	var req UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	claimDate, err := parseDate(req.ClaimDate)
	if err != nil {
		h.BadRequest(c, "Invalid claim date, expected YYYY-MM-DD")
		return
	}

	claim, err := h.warrantyService.UpdateClaim(c.Request.Context(), claimID, warrantyapp.UpdateClaimRequest{
		ClaimDate: claimDate,
		Quantity:  req.Quantity,
		Details:   req.Details,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, claim)
}

// ResolveClaim marks a pending claim resolved
func (h *WarrantyHandler) ResolveClaim(c *gin.Context) {
	h.settleClaim(c, h.warrantyService.ResolveClaim)
}

// RejectClaim marks a pending claim rejected
func (h *WarrantyHandler) RejectClaim(c *gin.Context) {
	h.settleClaim(c, h.warrantyService.RejectClaim)
}

func (h *WarrantyHandler) settleClaim(c *gin.Context, settle func(ctx context.Context, claimID uuid.UUID, date time.Time, detail string) (*warrantyapp.ClaimResponse, error)) {
	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid claim ID format")
		return
	}

	var req SettleClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	claim, err := settle(c.Request.Context(), claimID, date, req.Detail)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, claim)
}
