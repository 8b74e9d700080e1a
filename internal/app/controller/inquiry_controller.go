package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type InquiryController struct {
	inquiryService service.InquiryService
}

func NewInquiryController(inquiryService service.InquiryService) *InquiryController {
	return &InquiryController{
		inquiryService: inquiryService,
	}
}

type SubmitInquiryRequest struct {
	ProductID     *uint   `json:"product_id"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone *string `json:"customer_phone"`
	Message       string  `json:"message" binding:"required"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitInquiry accepts a customer inquiry from the public site
// POST /api/inquiries
func (ctrl *InquiryController) SubmitInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid inquiry submission request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, email and message are required")
		return
	}

	inquiry, err := ctrl.inquiryService.Submit(service.SubmitInquiryInput{
		ProductID:     req.ProductID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Message:       req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInquiryInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, email and message are required")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			log.Error("Failed to submit inquiry", err, nil)
			apperrors.RespondWithParsedError(c, err, "create inquiry")
		}
		return
	}

	log.Info("Inquiry submitted", map[string]interface{}{
		"inquiry_id": inquiry.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"inquiry": inquiry,
	})
}

// GetInquiries lists inquiries with optional status filter and pagination
// GET /api/admin/inquiries
func (ctrl *InquiryController) GetInquiries(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.InquiryFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		if !model.ValidInquiryStatus(statusStr) {
			apperrors.BadRequest(c, apperrors.InquiryInvalidStatus, "Unknown inquiry status")
			return
		}
		status := model.InquiryStatus(statusStr)
		filter.Status = &status
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	inquiries, err := ctrl.inquiryService.List(filter)
	if err != nil {
		log.Error("Failed to fetch inquiries", err, nil)
		apperrors.InternalError(c, "Failed to fetch inquiries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// UpdateInquiryStatus moves an inquiry through the negotiation stages
// PUT /api/admin/inquiries/:id/status
func (ctrl *InquiryController) UpdateInquiryStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inquiry ID")
		return
	}

	var req UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status is required")
		return
	}

	inquiry, err := ctrl.inquiryService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryNotFound):
			apperrors.NotFound(c, apperrors.InquiryNotFound, "Inquiry not found")
		case errors.Is(err, service.ErrInvalidInquiryStatus):
			apperrors.BadRequest(c, apperrors.InquiryInvalidStatus, "Unknown inquiry status")
		case errors.Is(err, service.ErrInquiryConverted):
			apperrors.Conflict(c, apperrors.InquiryConverted, "Inquiry has been converted to a sale and can no longer change")
		default:
			log.Error("Failed to update inquiry status", err, map[string]interface{}{
				"inquiry_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "update inquiry")
		}
		return
	}

	log.Info("Inquiry status updated", map[string]interface{}{
		"inquiry_id": inquiry.ID,
		"status":     inquiry.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"inquiry": inquiry,
	})
}

// DeleteInquiry removes an inquiry that has not been converted
// DELETE /api/admin/inquiries/:id
func (ctrl *InquiryController) DeleteInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid inquiry ID")
		return
	}

	if err := ctrl.inquiryService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryNotFound):
			apperrors.NotFound(c, apperrors.InquiryNotFound, "Inquiry not found")
		case errors.Is(err, service.ErrInquiryConverted):
			apperrors.Conflict(c, apperrors.InquiryConverted, "Inquiry has a recorded sale and cannot be deleted")
		default:
			log.Error("Failed to delete inquiry", err, map[string]interface{}{
				"inquiry_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "delete inquiry")
		}
		return
	}

	log.Info("Inquiry deleted", map[string]interface{}{
		"inquiry_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Inquiry deleted",
	})
}
