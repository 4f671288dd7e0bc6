package models

import (
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/enums"
	"github.com/google/uuid"
)

// Order is the immutable record produced when a cart is checked out.
// Shipping and contact fields are copied verbatim from the validated form.
// CartID is an audit reference to the consumed cart, not ownership.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	CartID     uuid.UUID         `gorm:"column:cart_id;type:uuid;not null"`
	FirstName  string            `gorm:"column:first_name;not null"`
	LastName   string            `gorm:"column:last_name;not null"`
	Phone      string            `gorm:"column:phone;not null"`
	Address    string            `gorm:"column:address;not null"`
	BuyingType enums.BuyingType  `gorm:"column:buying_type;not null;default:'self'"`
	OrderDate  time.Time         `gorm:"column:order_date;not null"`
	Comment    *string           `gorm:"column:comment"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'new'"`
	Cart       *Cart             `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
