package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryLeather ProductCategory = "leather"
	CategoryBomber  ProductCategory = "bomber"
	CategoryVarsity ProductCategory = "varsity"
	CategoryTrucker ProductCategory = "trucker"
	CategoryDenim   ProductCategory = "denim"
	CategoryCanvas  ProductCategory = "canvas"
	CategoryCoach   ProductCategory = "coach"
	CategoryField   ProductCategory = "field"
)

type ProductCollection string

const (
	CollectionInferno    ProductCollection = "inferno"
	CollectionPhoenix    ProductCollection = "phoenix"
	CollectionEssentials ProductCollection = "essentials"
)

// Product is a catalog entry. PriceCents is the authoritative amount in minor
// currency units; PriceText is the formatted display string shown in the
// storefront ("$1,295 USD").
type Product struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	Name          string            `gorm:"not null" json:"name"`
	Description   string            `gorm:"type:text" json:"description"`
	PriceCents    int64             `gorm:"not null" json:"price_cents"`
	PriceText     string            `gorm:"not null" json:"price_text"`
	Category      ProductCategory   `gorm:"type:varchar(50);index" json:"category"`
	Collection    ProductCollection `gorm:"type:varchar(50);index" json:"collection"`
	ImageURL      string            `json:"image_url"`
	HoverImageURL string            `json:"hover_image_url,omitempty"`
	IsNew         bool              `gorm:"default:false" json:"is_new"`
	IsActive      bool              `gorm:"default:true" json:"is_active"`
	Sizes         pq.StringArray    `gorm:"type:text[]" json:"sizes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
