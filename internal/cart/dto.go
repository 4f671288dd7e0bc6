package cart

import (
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineDTO is one product line in a cart view.
type LineDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartDTO is the storefront view of a cart with its derived totals.
type CartDTO struct {
	ID            uuid.UUID       `json:"id"`
	Anonymous     bool            `json:"anonymous"`
	InOrder       bool            `json:"in_order"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Lines         []LineDTO       `json:"lines"`
}

func toLineDTO(item *models.CartItem) LineDTO {
	dto := LineDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Qty:       item.Qty,
		LineTotal: item.LineTotal,
	}
	if item.Product != nil {
		dto.Slug = item.Product.Slug
		dto.Title = item.Product.Title
		dto.UnitPrice = item.Product.Price
	}
	return dto
}

func toCartDTO(cart *models.Cart) *CartDTO {
	if cart == nil {
		return nil
	}
	dto := &CartDTO{
		ID:            cart.ID,
		Anonymous:     cart.ForAnonymousUser,
		InOrder:       cart.InOrder,
		TotalQuantity: cart.TotalQuantity,
		TotalPrice:    cart.TotalPrice,
		Lines:         make([]LineDTO, 0, len(cart.Items)),
	}
	for i := range cart.Items {
		dto.Lines = append(dto.Lines, toLineDTO(&cart.Items[i]))
	}
	return dto
}
