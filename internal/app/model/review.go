package model

import (
	"time"
)

// MaxReviewImages caps the image set of a single review, enforced at write time
const MaxReviewImages = 5

// Review is a curated customer testimonial, optionally linked to the product
// and sale it came from.
type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CustomerName string    `gorm:"not null" json:"customer_name"`
	ProductName  string    `gorm:"not null" json:"product_name"`
	ProductID    *uint     `gorm:"index" json:"product_id,omitempty"`
	SaleID       *uint     `gorm:"index" json:"sale_id,omitempty"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Rating       int       `gorm:"default:5" json:"rating"` // 1-5
	IsFeatured   bool      `gorm:"default:false" json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Images []ReviewImage `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"review_images,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewImage keeps the storage path alongside the public URL so the object
// can be removed from storage when the image or review is deleted.
type ReviewImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ReviewID     uint      `gorm:"not null;index" json:"review_id"`
	ImageURL     string    `gorm:"not null" json:"image_url"`
	StoragePath  string    `gorm:"not null" json:"-"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ReviewImage) TableName() string {
	return "review_images"
}
