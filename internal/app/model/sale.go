package model

import (
	"time"
)

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusRefunded  SaleStatus = "refunded"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Sale is a recorded completed transaction, optionally converted from an
// inquiry. The nullable unique index on InquiryID enforces at most one sale
// per inquiry at the storage layer; application checks are a fast path only.
type Sale struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	InquiryID     *uint      `gorm:"uniqueIndex:idx_sales_inquiry_id" json:"inquiry_id,omitempty"`
	ProductID     *uint      `gorm:"index" json:"product_id,omitempty"`
	CustomerName  string     `gorm:"not null" json:"customer_name"`
	CustomerEmail string     `gorm:"not null" json:"customer_email"`
	CustomerPhone *string    `json:"customer_phone,omitempty"`
	SaleAmount    float64    `gorm:"not null" json:"sale_amount"`
	Quantity      int        `gorm:"default:1" json:"quantity"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Status        SaleStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`
	SoldAt        time.Time  `gorm:"autoCreateTime" json:"sold_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Inquiry *Inquiry `gorm:"foreignKey:InquiryID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}
