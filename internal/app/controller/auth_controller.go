package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login issues an admin token
// POST /api/admin/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.Unauthorized(c, "Invalid email or password")
			return
		}
		log.Error("Admin login failed", err, nil)
		apperrors.InternalError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

// Logout revokes the presented token
// POST /api/admin/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		apperrors.Unauthorized(c, "Bearer token required")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		log.Error("Admin logout failed", err, nil)
		apperrors.InternalError(c, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
