package router

import (
	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/config"
	"github.com/amontenegro/gadgethub-backend/internal/app/controller"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	inquiryController   *controller.InquiryController
	saleController      *controller.SaleController
	dashboardController *controller.DashboardController
	reviewController    *controller.ReviewController
	sellerController    *controller.SellerController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	inquiryController *controller.InquiryController,
	saleController *controller.SaleController,
	dashboardController *controller.DashboardController,
	reviewController *controller.ReviewController,
	sellerController *controller.SellerController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		inquiryController:   inquiryController,
		saleController:      saleController,
		dashboardController: dashboardController,
		reviewController:    reviewController,
		sellerController:    sellerController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GadgetHub API is running",
		})
	})

	api := router.Group("/api")
	{
		// Public storefront
		products := api.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", r.reviewController.GetReviews)
			reviews.GET("/featured", r.reviewController.GetFeaturedReviews)
		}

		api.GET("/seller/profile", r.sellerController.GetProfile)
		api.POST("/inquiries", r.inquiryController.SubmitInquiry)

		admin := api.Group("/admin")
		{
			admin.POST("/login", r.authController.Login)

			authed := admin.Group("")
			authed.Use(r.authMiddleware.Authenticate())
			{
				authed.POST("/logout", r.authController.Logout)

				authed.GET("/dashboard/stats", r.dashboardController.GetStats)

				authed.POST("/products", r.productController.CreateProduct)
				authed.PUT("/products/:id", r.productController.UpdateProduct)
				authed.DELETE("/products/:id", r.productController.DeleteProduct)
				authed.POST("/products/:id/images", r.productController.UploadProductImages)
				authed.POST("/products/:id/image", r.productController.AddProductImage)
				authed.DELETE("/images/:imageId", r.productController.DeleteProductImage)
				authed.PUT("/images/order", r.productController.ReorderProductImages)

				authed.GET("/inquiries", r.inquiryController.GetInquiries)
				authed.PUT("/inquiries/:id/status", r.inquiryController.UpdateInquiryStatus)
				authed.DELETE("/inquiries/:id", r.inquiryController.DeleteInquiry)

				authed.POST("/sales", r.saleController.RecordSale)
				authed.GET("/sales", r.saleController.GetSales)
				authed.PUT("/sales/:id", r.saleController.UpdateSale)
				authed.DELETE("/sales/:id", r.saleController.DeleteSale)

				authed.POST("/reviews", r.reviewController.CreateReview)
				authed.PUT("/reviews/:id", r.reviewController.UpdateReview)
				authed.DELETE("/reviews/:id", r.reviewController.DeleteReview)
				authed.POST("/reviews/:id/images", r.reviewController.UploadReviewImages)
				authed.DELETE("/reviews/images/:imageId", r.reviewController.DeleteReviewImage)

				authed.PUT("/seller/profile", r.sellerController.UpdateProfile)
				authed.POST("/seller/profile/picture", r.sellerController.UploadProfilePicture)
				authed.DELETE("/seller/profile/picture", r.sellerController.DeleteProfilePicture)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
