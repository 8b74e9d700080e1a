package model

import (
	"time"
)

// SellerProfile is the storefront owner's business identity. Exactly one row
// exists; the migration seeds it on first boot.
type SellerProfile struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Name               string    `json:"name"`
	BusinessName       string    `json:"business_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Bio                string    `gorm:"type:text" json:"bio"`
	ProfilePictureURL  string    `json:"profile_picture_url"`
	ProfilePicturePath string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (SellerProfile) TableName() string {
	return "seller_profile"
}
