package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type SaleController struct {
	saleService service.SaleService
}

func NewSaleController(saleService service.SaleService) *SaleController {
	return &SaleController{
		saleService: saleService,
	}
}

type RecordSaleRequest struct {
	InquiryID     *uint   `json:"inquiry_id"`
	ProductID     *uint   `json:"product_id"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone *string `json:"customer_phone"`
	// Pointer so a legitimate zero amount passes "required"
	SaleAmount    *float64 `json:"sale_amount" binding:"required,gte=0"`
	Quantity      int      `json:"quantity" binding:"gte=0"`
	PaymentMethod string   `json:"payment_method"`
	Notes         string   `json:"notes"`
}

type UpdateSaleRequest struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerEmail *string  `json:"customer_email"`
	CustomerPhone *string  `json:"customer_phone"`
	SaleAmount    *float64 `json:"sale_amount"`
	PaymentMethod *string  `json:"payment_method"`
	Notes         *string  `json:"notes"`
	Status        *string  `json:"status"`
}

// RecordSale records a completed sale, optionally converting an inquiry
// POST /api/admin/sales
func (ctrl *SaleController) RecordSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sale request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Customer name, email and sale amount are required")
		return
	}

	sale, err := ctrl.saleService.Record(service.RecordSaleInput{
		InquiryID:     req.InquiryID,
		ProductID:     req.ProductID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SaleAmount:    *req.SaleAmount,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSaleInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Customer name and a non-negative amount are required")
		case errors.Is(err, service.ErrInquiryNotFound):
			apperrors.NotFound(c, apperrors.InquiryNotFound, "Inquiry not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInquiryAlreadySold):
			apperrors.Conflict(c, apperrors.SaleInquiryConverted, "A sale has already been recorded for this inquiry")
		default:
			log.Error("Failed to record sale", err, map[string]interface{}{
				"inquiry_id": req.InquiryID,
			})
			apperrors.RespondWithParsedError(c, err, "create sale")
		}
		return
	}

	log.Info("Sale recorded", map[string]interface{}{
		"sale_id":     sale.ID,
		"inquiry_id":  sale.InquiryID,
		"sale_amount": sale.SaleAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"sale": sale,
	})
}

// GetSales lists all sales, newest first
// GET /api/admin/sales
func (ctrl *SaleController) GetSales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sales, err := ctrl.saleService.List()
	if err != nil {
		log.Error("Failed to fetch sales", err, nil)
		apperrors.InternalError(c, "Failed to fetch sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}

// UpdateSale patches sale fields after the fact
// PUT /api/admin/sales/:id
func (ctrl *SaleController) UpdateSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid sale ID")
		return
	}

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sale, err := ctrl.saleService.Update(uint(id), service.UpdateSaleInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SaleAmount:    req.SaleAmount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			apperrors.NotFound(c, apperrors.SaleNotFound, "Sale not found")
		case errors.Is(err, service.ErrInvalidSaleInput), errors.Is(err, service.ErrInvalidSaleStatus):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid sale data")
		default:
			log.Error("Failed to update sale", err, map[string]interface{}{
				"sale_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "update sale")
		}
		return
	}

	log.Info("Sale updated", map[string]interface{}{
		"sale_id": sale.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"sale": sale,
	})
}

// DeleteSale removes a sale record
// DELETE /api/admin/sales/:id
func (ctrl *SaleController) DeleteSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid sale ID")
		return
	}

	if err := ctrl.saleService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			apperrors.NotFound(c, apperrors.SaleNotFound, "Sale not found")
			return
		}
		log.Error("Failed to delete sale", err, map[string]interface{}{
			"sale_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "delete sale")
		return
	}

	log.Info("Sale deleted", map[string]interface{}{
		"sale_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale deleted",
	})
}
