package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryIPhones     ProductCategory = "iPhones"
	CategoryAndroid     ProductCategory = "Android"
	CategoryLaptops     ProductCategory = "Laptops"
	CategoryAccessories ProductCategory = "Accessories"
)

// ValidCategory reports whether s is one of the catalog categories
func ValidCategory(s string) bool {
	switch ProductCategory(s) {
	case CategoryIPhones, CategoryAndroid, CategoryLaptops, CategoryAccessories:
		return true
	}
	return false
}

// SpecMap stores product specifications as a JSON key/value column
type SpecMap map[string]string

func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *SpecMap) Scan(value interface{}) error {
	if value == nil {
		*m = SpecMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported specifications column type %T", value)
}

type Product struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Category       ProductCategory `gorm:"type:varchar(50);not null" json:"category"`
	Price          float64         `gorm:"not null" json:"price"`
	Description    string          `gorm:"type:text" json:"description"`
	Specifications SpecMap         `gorm:"type:text" json:"specifications"`
	// No gorm default tag: with one, a zero-value false is replaced by the
	// column default on insert and an unavailable product cannot be created.
	// Callers that want the default set it explicitly (service layer, seeder).
	Availability   bool            `json:"availability"`
	Featured       bool            `gorm:"default:false" json:"featured"`
	StockCount     int             `gorm:"default:0" json:"stock_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product_images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// PrimaryImageURL returns the designated primary image, or "" when none is set
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}

// ProductImage is one entry of a product's ordered image set.
// At most one image per product carries IsPrimary.
type ProductImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	ImageURL     string    `gorm:"not null" json:"image_url"`
	StoragePath  string    `gorm:"not null" json:"-"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsPrimary    bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
