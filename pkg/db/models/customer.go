package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the shop profile linked one-to-one with a user credential.
// Orders are append-only.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Phone     string    `gorm:"column:phone;not null"`
	Address   string    `gorm:"column:address;not null"`
	User      *User     `gorm:"foreignKey:UserID"`
	Orders    []Order   `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
