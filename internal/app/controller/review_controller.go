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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	ProductID    *uint  `json:"product_id"`
	SaleID       *uint  `json:"sale_id"`
	CustomerName string `json:"customer_name" binding:"required"`
	ProductName  string `json:"product_name" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Description  string `json:"description" binding:"required"`
	IsFeatured   bool   `json:"is_featured"`
}

type UpdateReviewRequest struct {
	CustomerName *string `json:"customer_name"`
	ProductName  *string `json:"product_name"`
	Rating       *int    `json:"rating"`
	Description  *string `json:"description"`
	IsFeatured   *bool   `json:"is_featured"`
}

// GetReviews lists all reviews, newest first
// GET /api/reviews
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviews, err := ctrl.reviewService.List()
	if err != nil {
		log.Error("Failed to fetch reviews", err, nil)
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// GetFeaturedReviews lists the featured subset for the homepage
// GET /api/reviews/featured
func (ctrl *ReviewController) GetFeaturedReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviews, err := ctrl.reviewService.ListFeatured()
	if err != nil {
		log.Error("Failed to fetch featured reviews", err, nil)
		apperrors.InternalError(c, "Failed to fetch featured reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// CreateReview adds a testimonial
// POST /api/admin/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Customer name, product name, rating and description are required")
		return
	}

	review, err := ctrl.reviewService.Create(service.CreateReviewInput{
		ProductID:    req.ProductID,
		SaleID:       req.SaleID,
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Rating:       req.Rating,
		Description:  req.Description,
		IsFeatured:   req.IsFeatured,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReviewInput):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Invalid review data")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			log.Error("Failed to create review", err, nil)
			apperrors.RespondWithParsedError(c, err, "create review")
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"review": review,
	})
}

// UpdateReview patches a testimonial, including the featured flag
// PUT /api/admin/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	review, err := ctrl.reviewService.Update(uint(id), service.UpdateReviewInput{
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Rating:       req.Rating,
		Description:  req.Description,
		IsFeatured:   req.IsFeatured,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrInvalidReviewInput):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Invalid review data")
		default:
			log.Error("Failed to update review", err, map[string]interface{}{
				"review_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "update review")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review": review,
	})
}

// DeleteReview removes a testimonial and its stored images
// DELETE /api/admin/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		log.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "delete review")
		return
	}

	log.Info("Review deleted", map[string]interface{}{
		"review_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}

// UploadReviewImages accepts a multipart batch, capped per review
// POST /api/admin/reviews/:id/images
func (ctrl *ReviewController) UploadReviewImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Multipart form expected")
		return
	}
	files := form.File["images"]

	images, err := ctrl.reviewService.UploadImages(c.Request.Context(), uint(id), files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFilesUploaded):
			apperrors.BadRequest(c, apperrors.UploadNoFiles, "No files uploaded")
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrReviewImageLimit):
			apperrors.BadRequest(c, apperrors.ReviewImageLimit, "A review can hold at most 5 images")
		default:
			log.Error("Failed to upload review images", err, map[string]interface{}{
				"review_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "upload review image")
		}
		return
	}

	log.Info("Review images uploaded", map[string]interface{}{
		"review_id": id,
		"saved":     len(images),
	})

	c.JSON(http.StatusCreated, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// DeleteReviewImage removes one image from storage and the review
// DELETE /api/admin/reviews/images/:imageId
func (ctrl *ReviewController) DeleteReviewImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid image ID")
		return
	}

	if err := ctrl.reviewService.DeleteImage(c.Request.Context(), uint(imageID)); err != nil {
		if errors.Is(err, service.ErrReviewImageNotFound) {
			apperrors.NotFound(c, apperrors.ReviewImageNotFound, "Review image not found")
			return
		}
		log.Error("Failed to delete review image", err, map[string]interface{}{
			"image_id": imageID,
		})
		apperrors.RespondWithParsedError(c, err, "delete review image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image deleted",
	})
}
