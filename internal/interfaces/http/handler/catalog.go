package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/voltshop/backend/internal/application/catalog"
	"github.com/voltshop/backend/internal/interfaces/http/dto"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles category and product endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CategoryRequest is the request body for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateProductRequest is the request body for adding a catalog item
type CreateProductRequest struct {
	Code       string `json:"code" binding:"required,min=2,max=13"`
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Brand      string `json:"brand" binding:"max=100"`
	Model      string `json:"model" binding:"max=100"`
	AmpereHour int    `json:"ampere_hour" binding:"omitempty,min=1"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// UpdateProductRequest is the request body for editing a catalog item
type UpdateProductRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Brand      string `json:"brand" binding:"max=100"`
	Model      string `json:"model" binding:"max=100"`
	AmpereHour int    `json:"ampere_hour" binding:"omitempty,min=1"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// RegisterRoutes registers category and product routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.POST("", h.CreateCategory)
	categories.GET("", h.ListCategories)
	categories.PUT("/:id", h.RenameCategory)
	categories.DELETE("/:id", middleware.RequireAdmin(), h.DeleteCategory)

	products := rg.Group("/products")
	products.POST("", h.CreateProduct)
	products.GET("", h.ListProducts)
	products.GET("/availability", h.ListAvailability)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
}

// CreateCategory creates a new category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// ListCategories returns all active categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	categories, err := h.catalogService.ListCategories(c.Request.Context(), buildFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categories)
}

// RenameCategory renames a category
func (h *CatalogHandler) RenameCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.catalogService.RenameCategory(c.Request.Context(), categoryID, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory soft-deletes a category without products
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateProduct adds a product to the catalog
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), catalogapp.CreateProductRequest{
		Code:       req.Code,
		Name:       req.Name,
		Brand:      req.Brand,
		Model:      req.Model,
		AmpereHour: req.AmpereHour,
		CategoryID: categoryID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetProduct returns a product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ListProducts returns a paginated list of products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := buildFilter(req)
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		filter.Filters = map[string]interface{}{"category_id": id}
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.Limit())
}

// ListAvailability returns products with their sellable stock
func (h *CatalogHandler) ListAvailability(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	availability, err := h.catalogService.ListAvailability(c.Request.Context(), buildFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, availability)
}

// UpdateProduct edits a catalog item. The product code is immutable.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), productID, catalogapp.UpdateProductRequest{
		Name:       req.Name,
		Brand:      req.Brand,
		Model:      req.Model,
		AmpereHour: req.AmpereHour,
		CategoryID: categoryID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}
