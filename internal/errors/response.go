package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code (see codes.go)
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes a standard error response
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shorthand responders for the common cases

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithParsedError runs an unexpected lower-layer error through
// ParseError and writes the response with a status matching the parsed code.
// context is a short verb phrase ("create product") used to pick the message.
func RespondWithParsedError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)

	status := http.StatusInternalServerError
	switch info.Code {
	case ResourceNotFound, ProductNotFound, InquiryNotFound, SaleNotFound,
		ReviewNotFound, SellerProfileNotFound:
		status = http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, SaleInquiryConverted:
		status = http.StatusConflict
	case ValidationRequired, ValidationInvalidInput, ReviewInvalidRating:
		status = http.StatusBadRequest
	}

	RespondWithError(c, status, info.Code, info.Message)
}

// ValidationError carries per-field messages for input validation failures
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Invalid input",
		Fields:  fields,
	})
}
