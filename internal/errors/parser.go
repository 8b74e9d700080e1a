package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a lower-layer error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and gateway errors into a user-safe code and
// message. Internal detail stays in the server log, never in the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	if IsDuplicateKey(err) {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Invalid input",
		}
	}

	// Network/connection failures against the persistence or storage gateway
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation, covering
// gorm's translated error (postgres 23505) and the raw sqlite wording.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// One sale per inquiry: the unique index on sales.inquiry_id is the
	// authoritative enforcement of the conversion invariant.
	if strings.Contains(errLower, "inquiry_id") || strings.Contains(errLower, "idx_sales_inquiry") {
		return ErrorInfo{
			Code:    SaleInquiryConverted,
			Message: "This inquiry has already been converted to a sale",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Other records still reference this one, so it cannot be deleted",
		}
	}

	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "inquiry_id") || strings.Contains(errLower, "fk_inquiries") {
		return ErrorInfo{
			Code:    InquiryNotFound,
			Message: "The referenced inquiry does not exist",
		}
	}
	if strings.Contains(errLower, "review_id") || strings.Contains(errLower, "fk_reviews") {
		return ErrorInfo{
			Code:    ReviewNotFound,
			Message: "The referenced review does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "inquiry"):
		return "Inquiry not found"
	case strings.Contains(contextLower, "sale"):
		return "Sale not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "seller"), strings.Contains(contextLower, "profile"):
		return "Seller profile not found"
	case strings.Contains(contextLower, "image"):
		return "Image not found"
	}
	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record. Please try again later"
	case strings.Contains(contextLower, "upload"):
		return "Upload failed. Please try again later"
	}
	return "Something went wrong. Please try again later"
}
