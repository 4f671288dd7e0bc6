package checkout

import (
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/enums"
	"github.com/google/uuid"
)

// ShippingInput is the validated order form. Field values are copied onto the
// order verbatim, never normalized.
type ShippingInput struct {
	FirstName  string           `validate:"required"`
	LastName   string           `validate:"required"`
	Phone      string           `validate:"required"`
	Address    string           `validate:"required"`
	BuyingType enums.BuyingType `validate:"required"`
	OrderDate  time.Time        `validate:"required"`
	Comment    *string
}

// OrderDTO is the view of a created or listed order.
type OrderDTO struct {
	ID         uuid.UUID         `json:"id"`
	CartID     uuid.UUID         `json:"cart_id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	BuyingType enums.BuyingType  `json:"buying_type"`
	OrderDate  time.Time         `json:"order_date"`
	Comment    *string           `json:"comment,omitempty"`
	Status     enums.OrderStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ToOrderDTO maps an order row to its transport view.
func ToOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	return &OrderDTO{
		ID:         order.ID,
		CartID:     order.CartID,
		FirstName:  order.FirstName,
		LastName:   order.LastName,
		Phone:      order.Phone,
		Address:    order.Address,
		BuyingType: order.BuyingType,
		OrderDate:  order.OrderDate,
		Comment:    order.Comment,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}
}
