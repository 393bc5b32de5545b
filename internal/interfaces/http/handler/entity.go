package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/voltshop/backend/internal/application/partner"
	"github.com/voltshop/backend/internal/domain/partner"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
)

// EntityHandler handles customer and supplier registry endpoints
type EntityHandler struct {
	BaseHandler
	entityService *partnerapp.EntityService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(entityService *partnerapp.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// CreateEntityRequest is the request body for registering a customer or
// supplier
type CreateEntityRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CustomerType string `json:"customer_type" binding:"omitempty,oneof=INDIVIDUAL SHOPOWNER"`
	Contact      string `json:"contact" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Address      string `json:"address" binding:"max=500"`
}

// UpdateEntityRequest is the request body for editing a customer or
// supplier
type UpdateEntityRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CustomerType string `json:"customer_type" binding:"omitempty,oneof=INDIVIDUAL SHOPOWNER"`
	Contact      string `json:"contact" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Address      string `json:"address" binding:"max=500"`
}

// RegisterRoutes registers customer and supplier routes
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	customers.POST("", h.CreateCustomer)
	customers.GET("", h.ListCustomers)
	customers.GET("/:id", h.GetByID)
	customers.PUT("/:id", h.Update)
	customers.DELETE("/:id", middleware.RequireAdmin(), h.Delete)

	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.CreateSupplier)
	suppliers.GET("", h.ListSuppliers)
	suppliers.GET("/:id", h.GetByID)
	suppliers.PUT("/:id", h.Update)
	suppliers.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
}

// CreateCustomer registers a new customer
func (h *EntityHandler) CreateCustomer(c *gin.Context) {
	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entity, err := h.entityService.CreateCustomer(c.Request.Context(), partnerapp.CreateEntityRequest{
		Name:         req.Name,
		CustomerType: req.CustomerType,
		Contact:      req.Contact,
		Email:        req.Email,
		Address:      req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entity)
}

// CreateSupplier registers a new supplier
func (h *EntityHandler) CreateSupplier(c *gin.Context) {
	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entity, err := h.entityService.CreateSupplier(c.Request.Context(), partnerapp.CreateEntityRequest{
		Name:    req.Name,
		Contact: req.Contact,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entity)
}

// GetByID returns a customer or supplier by ID
func (h *EntityHandler) GetByID(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entity)
}

// ListCustomers returns a paginated list of customers
func (h *EntityHandler) ListCustomers(c *gin.Context) {
	h.listByType(c, partner.EntityTypeCustomer)
}

// ListSuppliers returns a paginated list of suppliers
func (h *EntityHandler) ListSuppliers(c *gin.Context) {
	h.listByType(c, partner.EntityTypeSupplier)
}

func (h *EntityHandler) listByType(c *gin.Context, entityType partner.EntityType) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := buildFilter(req)
	entities, total, err := h.entityService.ListByType(c.Request.Context(), entityType, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entities, total, filter.Page, filter.Limit())
}

// Update edits a customer's or supplier's master data
func (h *EntityHandler) Update(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	var req UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), entityID, partnerapp.UpdateEntityRequest{
		Name:         req.Name,
		CustomerType: req.CustomerType,
		Contact:      req.Contact,
		Email:        req.Email,
		Address:      req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entity)
}

// Delete soft-deletes a customer or supplier
func (h *EntityHandler) Delete(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), entityID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
