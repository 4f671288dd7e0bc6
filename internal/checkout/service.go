package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/enums"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartLoader interface {
	FindCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
}

// Service converts a cart into an order.
type Service interface {
	MakeOrder(ctx context.Context, customerID, cartID uuid.UUID, shipping ShippingInput) (*OrderDTO, error)
}

type service struct {
	repo     Repository
	carts    cartLoader
	dbClient txRunner
	validate *validator.Validate
	metrics  *metrics.StorefrontMetrics
}

// NewService constructs a checkout service instance.
func NewService(repo Repository, carts cartLoader, dbClient txRunner, storeMetrics *metrics.StorefrontMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		carts:    carts,
		dbClient: dbClient,
		validate: validator.New(),
		metrics:  storeMetrics,
	}, nil
}

// MakeOrder runs the whole conversion in a single transaction: the cart is
// consumed via compare-and-set on in_order, then the order row is created
// with the shipping fields copied verbatim. Concurrent double submission
// leaves exactly one order; the loser observes zero affected rows and aborts
// without a row of its own.
func (s *service) MakeOrder(ctx context.Context, customerID, cartID uuid.UUID, shipping ShippingInput) (*OrderDTO, error) {
	started := time.Now()

	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	if err := s.validate.Struct(shipping); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping fields").WithDetails(err.Error())
	}
	if !shipping.BuyingType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid buying type")
	}

	var order *models.Order
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := s.carts.FindCartByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
		}
		if cart.CustomerID != nil && *cart.CustomerID != customerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cart does not belong to customer")
		}
		if cart.TotalQuantity == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		affected, err := txRepo.MarkOrdered(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark cart ordered")
		}
		if affected == 0 {
			s.metrics.IncCheckoutConflict()
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart already ordered")
		}

		order = &models.Order{
			CustomerID: customerID,
			CartID:     cart.ID,
			FirstName:  shipping.FirstName,
			LastName:   shipping.LastName,
			Phone:      shipping.Phone,
			Address:    shipping.Address,
			BuyingType: shipping.BuyingType,
			OrderDate:  shipping.OrderDate,
			Comment:    shipping.Comment,
			Status:     enums.OrderStatusNew,
		}
		if _, err := txRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.metrics.IncOrderCreated(shipping.BuyingType.String())
	s.metrics.ObserveCheckoutDuration(time.Since(started))
	return ToOrderDTO(order), nil
}
