package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Image constraints enforced when products are created or updated.
// Uploads outside these bounds are rejected before anything is persisted.
var (
	ProductMinResolution = [2]int{400, 400}
	ProductMaxResolution = [2]int{3000, 3000}
)

const ProductMaxImageSizeBytes = 3 << 20

// Product is a storefront listing. Notebook and smartphone products carry an
// optional specialization row with category-specific attributes.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Title       string          `gorm:"column:title;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Description *string         `gorm:"column:description"`
	ImageURL    *string         `gorm:"column:image_url"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Notebook    *NotebookSpec   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Smartphone  *SmartphoneSpec `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
