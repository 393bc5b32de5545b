package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/voltshop/backend/internal/application/finance"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
)

// LedgerHandler handles derived ledger endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// UpdateLedgerEntityRequest is the request body for editing entity
// master data from the ledger screens
type UpdateLedgerEntityRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Contact string `json:"contact" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	ledger.GET("", h.List)
	ledger.GET("/entities/:id", h.GetByEntity)
	ledger.PUT("/entities/:id", h.UpdateEntity)
}

// List returns ledger entries, optionally bounded to a business date
// range and filtered to a single entity
func (h *LedgerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var dateRange shared.DateRange
	if start := c.Query("start_date"); start != "" {
		parsed, err := parseDate(start)
		if err != nil {
			h.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		dateRange.Start = parsed
	}
	if end := c.Query("end_date"); end != "" {
		parsed, err := parseDate(end)
		if err != nil {
			h.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		dateRange.End = parsed
	}

	filter := buildFilter(req)
	if entityID := c.Query("entity_id"); entityID != "" {
		id, err := uuid.Parse(entityID)
		if err != nil {
			h.BadRequest(c, "Invalid entity ID format")
			return
		}
		filter.Filters = map[string]interface{}{"entity_id": id}
	}

	entries, total, err := h.ledgerService.ListBetween(c.Request.Context(), dateRange, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.Limit())
}

// GetByEntity returns an entity's ledger entries with its outstanding
// position
func (h *LedgerHandler) GetByEntity(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ledger, err := h.ledgerService.GetByEntity(c.Request.Context(), entityID, buildFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ledger)
}

// UpdateEntity edits an entity's master data via the ledger screens
func (h *LedgerHandler) UpdateEntity(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	var req UpdateLedgerEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.ledgerService.UpdateEntity(c.Request.Context(), entityID, req.Name, req.Contact, req.Email, req.Address); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
