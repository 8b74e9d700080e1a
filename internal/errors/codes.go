package errors

// Error code constants returned in the "error" field of every error response.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps these to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY"
	ProductImageNotFound   = "PRODUCT_IMAGE_NOT_FOUND"

	// ==================== Inquiries (INQUIRY_) ====================
	InquiryNotFound      = "INQUIRY_NOT_FOUND"
	InquiryInvalidStatus = "INQUIRY_INVALID_STATUS"
	InquiryConverted     = "INQUIRY_CONVERTED"

	// ==================== Sales (SALE_) ====================
	SaleNotFound         = "SALE_NOT_FOUND"
	SaleInquiryConverted = "SALE_INQUIRY_ALREADY_CONVERTED"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewImageLimit    = "REVIEW_IMAGE_LIMIT"
	ReviewImageNotFound = "REVIEW_IMAGE_NOT_FOUND"

	// ==================== Seller profile (SELLER_) ====================
	SellerProfileNotFound = "SELLER_PROFILE_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadNoFiles         = "UPLOAD_NO_FILES"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
)
