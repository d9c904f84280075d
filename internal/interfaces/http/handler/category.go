package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storekit/backend/internal/application/catalog"
)

// CategoryHandler exposes tenant-scoped category endpoints. The API key gate
// attaches the subscription; everything here is scoped to it.
type CategoryHandler struct {
	BaseHandler
	categoryService *catalog.CategoryService
	gate            gin.HandlerFunc
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *catalog.CategoryService, gate gin.HandlerFunc) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		gate:            gate,
	}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.Use(h.gate)
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/tree", h.Tree)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// Create creates a category
func (h *CategoryHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated flat list of categories
func (h *CategoryHandler) List(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, total, filter.Page, filter.PageSize)
}

// Tree returns root categories with their direct children
func (h *CategoryHandler) Tree(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tree, err := h.categoryService.GetTree(c.Request.Context(), subscriptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tree)
}

// Get returns a single category
func (h *CategoryHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	result, err := h.categoryService.GetByID(c.Request.Context(), subscriptionID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update renames a category
func (h *CategoryHandler) Update(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), subscriptionID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes an empty category
func (h *CategoryHandler) Delete(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), subscriptionID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
