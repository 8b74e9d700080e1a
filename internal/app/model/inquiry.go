package model

import (
	"time"
)

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusCompleted InquiryStatus = "completed"
	InquiryStatusCancelled InquiryStatus = "cancelled"
)

// ValidInquiryStatus reports whether s is one of the negotiation stages
func ValidInquiryStatus(s string) bool {
	switch InquiryStatus(s) {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusContacted,
		InquiryStatusCompleted, InquiryStatusCancelled:
		return true
	}
	return false
}

// Inquiry is a customer's pre-sale interest in a product or a general question.
// Whether an inquiry has been converted to a sale is derived from the sales
// table (a referencing Sale row exists), not stored here; status describes the
// negotiation stage only.
type Inquiry struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	ProductID     *uint         `gorm:"index" json:"product_id,omitempty"`
	CustomerName  string        `gorm:"not null" json:"customer_name"`
	CustomerEmail string        `gorm:"not null" json:"customer_email"`
	CustomerPhone *string       `json:"customer_phone,omitempty"`
	Message       string        `gorm:"type:text;not null" json:"message"`
	Status        InquiryStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
