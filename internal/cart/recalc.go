package cart

import (
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ComputeTotals derives the cart aggregate from its lines. The function is
// pure and idempotent: totals depend only on the current line set.
func ComputeTotals(items []models.CartItem) (int, decimal.Decimal) {
	qty := 0
	total := decimal.Zero
	for i := range items {
		qty += items[i].Qty
		total = total.Add(items[i].LineTotal)
	}
	return qty, total
}

// LineTotal computes a line amount from unit price and quantity using exact
// decimal arithmetic.
func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
