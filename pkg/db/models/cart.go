package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the mutable per-owner aggregate of selected products.
// Exactly one of CustomerID/SessionID identifies the owner. Once InOrder is
// set the cart is consumed and no line mutation is permitted.
type Cart struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID       *uuid.UUID      `gorm:"column:customer_id;type:uuid"`
	SessionID        *string         `gorm:"column:session_id"`
	ForAnonymousUser bool            `gorm:"column:for_anonymous_user;not null;default:false"`
	InOrder          bool            `gorm:"column:in_order;not null;default:false"`
	TotalQuantity    int             `gorm:"column:total_quantity;not null;default:0"`
	TotalPrice       decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null;default:0"`
	Items            []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
