package checkout

import (
	"context"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the checkout persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// MarkOrdered atomically flips in_order on the cart. The WHERE clause is
	// the compare-and-set: zero affected rows means another checkout already
	// consumed the cart.
	MarkOrdered(ctx context.Context, cartID uuid.UUID) (int64, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a checkout repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) MarkOrdered(ctx context.Context, cartID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND in_order = ?", cartID, false).
		Update("in_order", true)
	return result.RowsAffected, result.Error
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
