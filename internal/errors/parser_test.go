package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_RecordNotFound(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "update product")
	assert.Equal(t, ResourceNotFound, info.Code)
	assert.Equal(t, "Product not found", info.Message)

	info = ParseError(gorm.ErrRecordNotFound, "delete inquiry")
	assert.Equal(t, "Inquiry not found", info.Message)
}

func TestParseError_InquiryUniqueViolation(t *testing.T) {
	// postgres wording
	err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_sales_inquiry_id" (SQLSTATE 23505)`)
	info := ParseError(err, "create sale")
	assert.Equal(t, SaleInquiryConverted, info.Code)

	// sqlite wording
	err = errors.New("UNIQUE constraint failed: sales.inquiry_id")
	info = ParseError(err, "create sale")
	assert.Equal(t, SaleInquiryConverted, info.Code)
}

func TestParseError_UnknownError(t *testing.T) {
	info := ParseError(errors.New("boom"), "create product")
	assert.Equal(t, InternalServerError, info.Code)
	assert.Equal(t, "Failed to create the record. Please try again later", info.Message)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New("duplicate key value violates unique constraint")))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: sales.inquiry_id")))

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}
