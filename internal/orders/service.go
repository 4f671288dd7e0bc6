package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaksTishchuk/OnlineShop-version-2/internal/checkout"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes order history reads for the profile view.
type Service interface {
	History(ctx context.Context, customerID uuid.UUID) ([]checkout.OrderDTO, error)
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*checkout.OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService constructs an orders service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) History(ctx context.Context, customerID uuid.UUID) ([]checkout.OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}

	history := make([]checkout.OrderDTO, 0, len(rows))
	for i := range rows {
		history = append(history, *checkout.ToOrderDTO(&rows[i]))
	}
	return history, nil
}

func (s *service) Get(ctx context.Context, customerID, orderID uuid.UUID) (*checkout.OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
	}
	return checkout.ToOrderDTO(order), nil
}
