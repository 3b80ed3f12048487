package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swechhitarimal/SMS/internal/application/service"
	"github.com/swechhitarimal/SMS/internal/presentation/http/dto/response"
)

// ProductHandler handles inventory-related HTTP requests
type ProductHandler struct {
	inventoryService *service.InventoryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(inventoryService *service.InventoryService) *ProductHandler {
	return &ProductHandler{inventoryService: inventoryService}
}

// List handles listing products with optional search and category filters
func (h *ProductHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	products, err := h.inventoryService.ListProducts(c.Request.Context(), search, category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// GetLowStock handles listing products at or below their minimum stock level
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.inventoryService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// ListCategories handles listing the categories in use
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.inventoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.inventoryService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Category    string  `json:"category"`
		Price       float64 `json:"price" binding:"required"`
		Cost        float64 `json:"cost"`
		Stock       int     `json:"stock"`
		MinStock    int     `json:"minStock"`
		Supplier    string  `json:"supplier"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Supplier:    req.Supplier,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Cost        *float64 `json:"cost"`
		Stock       *int     `json:"stock"`
		MinStock    *int     `json:"minStock"`
		Supplier    *string  `json:"supplier"`
		Description *string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Supplier:    req.Supplier,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
