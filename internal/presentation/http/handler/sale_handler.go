package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swechhitarimal/SMS/internal/application/service"
	"github.com/swechhitarimal/SMS/internal/domain/enum"
	"github.com/swechhitarimal/SMS/internal/presentation/http/dto/response"
)

// SaleHandler handles sales-related HTTP requests
type SaleHandler struct {
	salesService *service.SalesService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(salesService *service.SalesService) *SaleHandler {
	return &SaleHandler{salesService: salesService}
}

// List handles listing sales with an optional search term
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.salesService.ListSales(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved successfully", sales)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.salesService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles recording a new sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customerName" binding:"required"`
		CustomerEmail string `json:"customerEmail"`
		Items         []struct {
			ProductID string `json:"productId" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
		PaymentMethod string `json:"paymentMethod"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	sale, err := h.salesService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}
