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

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name           string        `json:"name" binding:"required"`
	Category       string        `json:"category" binding:"required"`
	Price          float64       `json:"price" binding:"gte=0"`
	Description    string        `json:"description"`
	Specifications model.SpecMap `json:"specifications"`
	Availability   *bool         `json:"availability"`
	Featured       bool          `json:"featured"`
	StockCount     int           `json:"stock_count" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name           *string       `json:"name"`
	Category       *string       `json:"category"`
	Price          *float64      `json:"price"`
	Description    *string       `json:"description"`
	Specifications model.SpecMap `json:"specifications"`
	Availability   *bool         `json:"availability"`
	Featured       *bool         `json:"featured"`
	StockCount     *int          `json:"stock_count"`
}

// GetProducts lists products with category/availability/search filters
// GET /api/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search: c.Query("search"),
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		if !model.ValidCategory(categoryStr) {
			apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Unknown product category")
			return
		}
		category := model.ProductCategory(categoryStr)
		filter.Category = &category
	}
	if availStr := c.Query("availability"); availStr != "" {
		avail := availStr == "true"
		filter.Availability = &avail
	}
	if c.Query("featured") == "true" {
		filter.FeaturedOnly = true
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := ctrl.productService.List(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a single product with its ordered images
// GET /api/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a catalog entry
// POST /api/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name and category are required")
		return
	}

	product, err := ctrl.productService.Create(service.CreateProductInput{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Description:    req.Description,
		Specifications: req.Specifications,
		Availability:   req.Availability,
		Featured:       req.Featured,
		StockCount:     req.StockCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Unknown product category")
		case errors.Is(err, service.ErrInvalidProductInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		default:
			log.Error("Failed to create product", err, nil)
			apperrors.RespondWithParsedError(c, err, "create product")
		}
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct patches catalog fields
// PUT /api/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.Update(uint(id), service.UpdateProductInput{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Description:    req.Description,
		Specifications: req.Specifications,
		Availability:   req.Availability,
		Featured:       req.Featured,
		StockCount:     req.StockCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidCategory):
			apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "Unknown product category")
		case errors.Is(err, service.ErrInvalidProductInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "update product")
		}
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct soft-deletes a catalog entry
// DELETE /api/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// UploadProductImages accepts a multipart batch for a product
// POST /api/admin/products/:id/images
func (ctrl *ProductController) UploadProductImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Multipart form expected")
		return
	}
	files := form.File["images"]

	images, err := ctrl.productService.UploadImages(c.Request.Context(), uint(id), files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFilesUploaded):
			apperrors.BadRequest(c, apperrors.UploadNoFiles, "No files uploaded")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			log.Error("Failed to upload product images", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "upload product image")
		}
		return
	}

	log.Info("Product images uploaded", map[string]interface{}{
		"product_id": id,
		"saved":      len(images),
	})

	c.JSON(http.StatusCreated, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// AddProductImage stores a single image, optionally as the new primary
// POST /api/admin/products/:id/image
func (ctrl *ProductController) AddProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadNoFiles, "Image file is required")
		return
	}
	isPrimary := c.PostForm("is_primary") == "true"

	image, err := ctrl.productService.AddImage(c.Request.Context(), uint(id), file, isPrimary)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add product image", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "upload product image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"image": image,
	})
}

// DeleteProductImage removes one image from storage and the catalog
// DELETE /api/admin/images/:imageId
func (ctrl *ProductController) DeleteProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid image ID")
		return
	}

	if err := ctrl.productService.DeleteImage(c.Request.Context(), uint(imageID)); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			apperrors.NotFound(c, apperrors.ProductImageNotFound, "Product image not found")
			return
		}
		log.Error("Failed to delete product image", err, map[string]interface{}{
			"image_id": imageID,
		})
		apperrors.RespondWithParsedError(c, err, "delete product image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image deleted",
	})
}

// ReorderProductImages applies id to display_order assignments
// PUT /api/admin/images/order
func (ctrl *ProductController) ReorderProductImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var entries []service.ImageOrderEntry
	if err := c.ShouldBindJSON(&entries); err != nil || len(entries) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Image order entries are required")
		return
	}

	if err := ctrl.productService.ReorderImages(entries); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			apperrors.NotFound(c, apperrors.ProductImageNotFound, "Product image not found")
			return
		}
		log.Error("Failed to reorder product images", err, nil)
		apperrors.RespondWithParsedError(c, err, "update product image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image order updated",
	})
}
