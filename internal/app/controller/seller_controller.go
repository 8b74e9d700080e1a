package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type SellerController struct {
	sellerService service.SellerService
}

func NewSellerController(sellerService service.SellerService) *SellerController {
	return &SellerController{
		sellerService: sellerService,
	}
}

type UpdateSellerRequest struct {
	Name         *string `json:"name"`
	BusinessName *string `json:"business_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Bio          *string `json:"bio"`
}

// GetProfile returns the public seller profile
// GET /api/seller/profile
func (ctrl *SellerController) GetProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profile, err := ctrl.sellerService.Get()
	if err != nil {
		log.Error("Failed to fetch seller profile", err, nil)
		apperrors.InternalError(c, "Failed to fetch seller profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
	})
}

// UpdateProfile patches seller profile fields
// PUT /api/admin/seller/profile
func (ctrl *SellerController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	profile, err := ctrl.sellerService.Update(service.UpdateSellerInput{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Bio:          req.Bio,
	})
	if err != nil {
		log.Error("Failed to update seller profile", err, nil)
		apperrors.RespondWithParsedError(c, err, "update seller profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
	})
}

// UploadProfilePicture replaces the seller picture
// POST /api/admin/seller/profile/picture
func (ctrl *SellerController) UploadProfilePicture(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, err := c.FormFile("picture")
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadNoFiles, "Picture file is required")
		return
	}

	profile, err := ctrl.sellerService.UploadPicture(c.Request.Context(), file)
	if err != nil {
		log.Error("Failed to upload profile picture", err, nil)
		apperrors.RespondWithParsedError(c, err, "upload seller profile picture")
		return
	}

	log.Info("Seller profile picture replaced", nil)

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
	})
}

// DeleteProfilePicture clears the seller picture
// DELETE /api/admin/seller/profile/picture
func (ctrl *SellerController) DeleteProfilePicture(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profile, err := ctrl.sellerService.RemovePicture(c.Request.Context())
	if err != nil {
		log.Error("Failed to remove profile picture", err, nil)
		apperrors.RespondWithParsedError(c, err, "update seller profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
	})
}
